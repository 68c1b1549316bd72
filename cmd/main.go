package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"vimeo-albums/internal/api"
	"vimeo-albums/internal/catalog"
	"vimeo-albums/internal/config"
	"vimeo-albums/internal/download"
	"vimeo-albums/internal/logging"
	"vimeo-albums/internal/model"
	"vimeo-albums/internal/report"
	"vimeo-albums/internal/state"
	"vimeo-albums/internal/worker"
)

const fetchAttempts = 3

func main() {
	cfg := config.Parse()
	logger := logging.New(os.Stderr, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cachePath := resolveAlbumCachePath(cfg)
	store, err := state.NewStore(resolveStatePath(cfg, cachePath))
	if err != nil {
		logger.Errorf("initialize seen-albums state: %v", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	apiClient := api.New(httpClient, cfg.BaseURL, cfg.Token)
	downloader := download.New(httpClient)
	albumCache := catalog.NewCache(cachePath)

	albums, err := loadAlbums(ctx, cfg, logger, apiClient, albumCache)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	selectedAlbums, err := chooseAlbums(cfg, albums)
	if err != nil {
		logger.Errorf("select albums: %v", err)
		os.Exit(1)
	}
	if len(selectedAlbums) == 0 {
		logger.Warnf("No albums selected; exiting")
		return
	}
	logger.Infof("Selected %d/%d albums", len(selectedAlbums), len(albums))

	jobs := make([]worker.Job[*report.Summary], 0, len(selectedAlbums))
	for _, album := range selectedAlbums {
		album := album
		jobs = append(jobs, func(ctx context.Context) (*report.Summary, error) {
			summary, err := processAlbum(ctx, cfg, logger, apiClient, downloader, store, album)
			if err != nil {
				return nil, fmt.Errorf("album %q: %w", albumLabel(album), err)
			}
			return summary, nil
		})
	}

	summaries, runErr := worker.Collect(ctx, cfg.Workers, jobs)

	printer := report.NewPrinter(os.Stdout)
	inspected := make([]model.Album, 0, len(summaries))
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		if err := printer.Print(*summary); err != nil {
			logger.Errorf("print album report: %v", err)
			os.Exit(1)
		}
		inspected = append(inspected, summary.Album)
	}

	if err := store.Record(inspected...); err != nil {
		logger.Warnf("Persist seen-albums state failed: %v", err)
	}

	if runErr != nil {
		logger.Errorf("one or more albums failed: %v", runErr)
		os.Exit(1)
	}
	logger.Infof("Inspected %d albums", len(inspected))
}

func resolveAlbumCachePath(cfg config.Config) string {
	if strings.TrimSpace(cfg.AlbumCachePath) != "" {
		return cfg.AlbumCachePath
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "vimeo-albums", "albums_cache.json")
}

func resolveStatePath(cfg config.Config, cachePath string) string {
	if strings.TrimSpace(cfg.StatePath) != "" {
		return cfg.StatePath
	}
	return filepath.Join(filepath.Dir(cachePath), "seen_albums.json")
}

func loadAlbums(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
	apiClient *api.Client,
	cache *catalog.Cache,
) ([]model.Album, error) {
	var cached catalog.Entry
	hasCached := false

	entry, err := cache.Load()
	switch {
	case err == nil && entry.Owner == cfg.User:
		cached = entry
		hasCached = true
	case err == nil:
		logger.Debugf("Ignoring album cache for %q; listing %q", entry.Owner, cfg.User)
	case !os.IsNotExist(err):
		logger.Warnf("Read album cache failed: %v", err)
	}

	if hasCached && !cfg.RefreshAlbums && cached.Fresh(cfg.AlbumCacheTTL, time.Now()) {
		logger.Infof("Loaded %d albums from cache: %s", len(cached.Albums), cache.Path())
		logger.Debugf("Album cache timestamp: %s", cached.FetchedAt.Local().Format(time.RFC3339))
		return cached.Albums, nil
	}

	logger.Infof("Fetching albums of %s from API", cfg.User)
	albums, err := withRetryResult(ctx, fetchAttempts, func() ([]model.Album, error) {
		return apiClient.GetUserAlbums(ctx, cfg.User)
	})
	if err != nil {
		if hasCached {
			logger.Warnf("Fetch albums failed (%v); using cached list with %d albums", err, len(cached.Albums))
			return cached.Albums, nil
		}
		return nil, fmt.Errorf("fetch albums: %w", err)
	}

	logger.Infof("Fetched %d albums from API", len(albums))
	if err := cache.Save(cfg.User, albums); err != nil {
		logger.Warnf("Persist album cache failed: %v", err)
	} else {
		logger.Debugf("Updated album cache: %s", cache.Path())
	}

	return albums, nil
}

func processAlbum(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
	apiClient *api.Client,
	downloader *download.Downloader,
	store *state.Store,
	listed model.Album,
) (*report.Summary, error) {
	album := listed
	if listed.URI != nil {
		logger.Debugf("[%s] Fetching album", *listed.URI)
		fetched, err := withRetryResult(ctx, fetchAttempts, func() (model.Album, error) {
			return apiClient.GetAlbum(ctx, *listed.URI)
		})
		if err != nil {
			return nil, fmt.Errorf("fetch album: %w", err)
		}
		album = fetched
		if album.URI == nil {
			album.URI = listed.URI
		}
	}

	label := albumLabel(album)
	if names := album.Interactions.Names(); len(names) > 0 {
		logger.Debugf("[%s] Interactions: %s", label, strings.Join(names, ", "))
	}

	summary := &report.Summary{
		Album:   album,
		Changed: store.Changed(album),
	}

	if cfg.PicturesDir != "" {
		result, err := downloader.DownloadAlbumPicture(ctx, cfg.PicturesDir, album, nil)
		switch {
		case errors.Is(err, download.ErrNoPicture):
			logger.Warnf("[%s] No picture to download", label)
		case err != nil:
			logger.Warnf("[%s] Download picture failed: %v", label, err)
		default:
			summary.PicturePath = result.Path
			logger.Infof(
				"[%s] Saved %dx%d picture (%s, %s)",
				label,
				result.Picture.Width,
				result.Picture.Height,
				formatBytes(result.BytesWritten),
				formatRate(result.BytesWritten, result.Duration),
			)
		}
	}

	return summary, nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	idx := 0
	for value >= unit && idx < len(units)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%.1f %s", value, units[idx])
}

func formatRate(bytes int64, duration time.Duration) string {
	if duration <= 0 {
		return "n/a"
	}
	bytesPerSecond := int64(float64(bytes) / duration.Seconds())
	return fmt.Sprintf("%s/s", formatBytes(bytesPerSecond))
}
