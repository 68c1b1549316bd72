package model

import (
	"encoding/json"
	"fmt"
)

// PictureCollection is a set of variants of one image at different sizes.
type PictureCollection struct {
	URI         *string   `json:"uri,omitempty"`
	Active      *bool     `json:"active,omitempty"`
	Type        *string   `json:"type,omitempty"`
	ResourceKey *string   `json:"resource_key,omitempty"`
	Sizes       []Picture `json:"sizes,omitempty"`
}

// Picture is a single rendition inside a PictureCollection.
type Picture struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	Link               string  `json:"link"`
	LinkWithPlayButton *string `json:"link_with_play_button,omitempty"`
}

// UnmarshalJSON decodes each member on its own. Renditions that fail to
// decode are dropped one by one.
func (pc *PictureCollection) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode picture collection: %w", err)
	}

	*pc = PictureCollection{
		URI:         optional[string](f["uri"]),
		Active:      optional[bool](f["active"]),
		Type:        optional[string](f["type"]),
		ResourceKey: optional[string](f["resource_key"]),
	}

	var sizes []json.RawMessage
	if isNull(f["sizes"]) || json.Unmarshal(f["sizes"], &sizes) != nil {
		return nil
	}
	for _, raw := range sizes {
		if p := optional[Picture](raw); p != nil {
			pc.Sizes = append(pc.Sizes, *p)
		}
	}
	return nil
}

// Largest returns the widest rendition that has a link.
func (pc *PictureCollection) Largest() (Picture, bool) {
	if pc == nil {
		return Picture{}, false
	}

	var best Picture
	found := false
	for _, p := range pc.Sizes {
		if p.Link == "" {
			continue
		}
		if !found || p.Width > best.Width {
			best = p
			found = true
		}
	}
	return best, found
}
