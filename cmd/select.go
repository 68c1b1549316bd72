package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"vimeo-albums/internal/config"
	"vimeo-albums/internal/model"
)

func albumLabel(a model.Album) string {
	name := model.Or(a.Name, "(untitled)")
	if a.URI == nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, *a.URI)
}

func albumKey(a model.Album) string {
	if a.URI != nil {
		return *a.URI
	}
	return albumLabel(a)
}

func chooseAlbums(cfg config.Config, albums []model.Album) ([]model.Album, error) {
	if strings.TrimSpace(cfg.Albums) != "" {
		return selectAlbumsByQuery(albums, cfg.Albums)
	}
	if len(albums) == 0 {
		return nil, nil
	}
	if cfg.ChooseAlbums {
		return chooseAlbumsInteractively(albums)
	}
	return albums, nil
}

func selectAlbumsByQuery(albums []model.Album, raw string) ([]model.Album, error) {
	parts := strings.Split(raw, ",")
	queries := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			queries = append(queries, p)
		}
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no valid album query provided")
	}

	seen := make(map[string]struct{})
	selected := make([]model.Album, 0, len(queries))
	for _, q := range queries {
		if strings.EqualFold(q, "all") {
			return albums, nil
		}

		match, err := resolveAlbumQuery(albums, q)
		if err != nil {
			return nil, err
		}
		key := albumKey(match)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		selected = append(selected, match)
	}

	return selected, nil
}

// resolveAlbumQuery matches a query against album URIs and names: exact
// first, then substring. A URI that is not in the list is returned as a bare
// album so it can still be fetched directly.
func resolveAlbumQuery(albums []model.Album, query string) (model.Album, error) {
	raw := strings.TrimSpace(query)
	q := strings.ToLower(raw)
	if q == "" {
		return model.Album{}, fmt.Errorf("empty album query")
	}

	exact := make([]model.Album, 0, 1)
	for _, a := range albums {
		if strings.EqualFold(model.Or(a.URI, ""), q) || strings.EqualFold(model.Or(a.Name, ""), q) {
			exact = append(exact, a)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	if len(exact) > 1 {
		return model.Album{}, fmt.Errorf("album query %q matched multiple albums exactly; use the URI", query)
	}

	if strings.HasPrefix(raw, "/") {
		return model.Album{URI: &raw}, nil
	}

	contains := make([]model.Album, 0, 4)
	for _, a := range albums {
		name := strings.ToLower(model.Or(a.Name, ""))
		uri := strings.ToLower(model.Or(a.URI, ""))
		if strings.Contains(name, q) || strings.Contains(uri, q) {
			contains = append(contains, a)
		}
	}
	if len(contains) == 1 {
		return contains[0], nil
	}
	if len(contains) > 1 {
		labels := make([]string, 0, len(contains))
		for _, a := range contains {
			labels = append(labels, albumLabel(a))
		}
		sort.Strings(labels)
		return model.Album{}, fmt.Errorf("album query %q is ambiguous: %s", query, strings.Join(labels, ", "))
	}

	return model.Album{}, fmt.Errorf("album query %q not found", query)
}

func chooseAlbumsInteractively(albums []model.Album) ([]model.Album, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("inspect stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 {
		return nil, fmt.Errorf("interactive selection requires a terminal; use --albums instead")
	}

	selected := make(map[int]struct{})

	for {
		options := make([]huh.Option[int], 0, len(albums))
		for idx, album := range albums {
			label := albumLabel(album)
			if album.IsFollowing() {
				label += " ★"
			}
			option := huh.NewOption(label, idx)
			if _, ok := selected[idx]; ok {
				option = option.Selected(true)
			}
			options = append(options, option)
		}

		var selectedInView []int
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewMultiSelect[int]().
					Title("Select albums to inspect").
					Description("Use x/space to toggle and / to filter. ★ marks albums you follow.").
					Options(options...).
					Value(&selectedInView),
			),
		).Run()
		if err != nil {
			return nil, fmt.Errorf("run interactive album selector: %w", err)
		}

		selected = make(map[int]struct{}, len(selectedInView))
		for _, idx := range selectedInView {
			selected[idx] = struct{}{}
		}

		selectedIndexes := selectedIndexesFromSet(selected)
		start, reviewErr := confirmSelectedAlbums(albums, selectedIndexes)
		if reviewErr != nil {
			return nil, fmt.Errorf("review selected albums: %w", reviewErr)
		}
		if start {
			return albumsFromIndexes(albums, selectedIndexes)
		}
	}
}

func selectedIndexesFromSet(selected map[int]struct{}) []int {
	indexes := make([]int, 0, len(selected))
	for idx := range selected {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes
}

func confirmSelectedAlbums(albums []model.Album, selectedIndexes []int) (bool, error) {
	options := []huh.Option[string]{
		huh.NewOption("Back to selection", "back"),
	}
	if len(selectedIndexes) > 0 {
		options = append([]huh.Option[string]{huh.NewOption("Inspect albums", "start")}, options...)
	}

	var action string
	err := huh.NewSelect[string]().
		Title("Review selected albums").
		Description(buildSelectedAlbumsPreview(albums, selectedIndexes, 16)).
		Options(options...).
		Value(&action).
		Run()
	if err != nil {
		return false, err
	}

	return action == "start", nil
}

func buildSelectedAlbumsPreview(albums []model.Album, selectedIndexes []int, maxItems int) string {
	if len(selectedIndexes) == 0 {
		return "No albums selected yet."
	}
	if maxItems < 1 {
		maxItems = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selected %d album(s):", len(selectedIndexes))

	shown := 0
	for _, idx := range selectedIndexes {
		if idx < 0 || idx >= len(albums) {
			continue
		}
		shown++
		fmt.Fprintf(&b, "\n%d. %s", shown, albumLabel(albums[idx]))
		if shown >= maxItems {
			break
		}
	}

	if len(selectedIndexes) > shown {
		fmt.Fprintf(&b, "\n... and %d more", len(selectedIndexes)-shown)
	}

	return b.String()
}

func albumsFromIndexes(albums []model.Album, indexes []int) ([]model.Album, error) {
	if len(indexes) == 0 {
		return nil, fmt.Errorf("no albums selected")
	}

	seen := make(map[int]struct{}, len(indexes))
	selected := make([]model.Album, 0, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(albums) {
			return nil, fmt.Errorf("selected album index %d out of bounds", idx)
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		selected = append(selected, albums[idx])
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no albums selected")
	}
	return selected, nil
}
