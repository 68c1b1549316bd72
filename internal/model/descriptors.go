package model

import (
	"fmt"
	"time"
)

// Well-known interaction names.
const (
	InteractionFollow = "follow"
)

// Connection points at a related collection that is fetched separately,
// such as the videos in an album.
type Connection struct {
	Name    string   `json:"-"`
	URI     *string  `json:"uri,omitempty"`
	Options []string `json:"options,omitempty"`
	Total   *int     `json:"total,omitempty"`
}

func (c *Connection) setName(name string) { c.Name = name }

// UnmarshalJSON decodes each member on its own; a bad member is left absent.
func (c *Connection) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode connection: %w", err)
	}

	*c = Connection{
		URI:     optional[string](f["uri"]),
		Options: Or(optional[[]string](f["options"]), nil),
		Total:   optional[int](f["total"]),
	}
	return nil
}

// Interaction carries viewer-specific state, such as whether the viewer
// follows the album.
type Interaction struct {
	Name      string     `json:"-"`
	Added     *bool      `json:"added,omitempty"`
	AddedTime *time.Time `json:"added_time,omitempty"`
	URI       *string    `json:"uri,omitempty"`
	Options   []string   `json:"options,omitempty"`
}

func (i *Interaction) setName(name string) { i.Name = name }

// UnmarshalJSON decodes each member on its own; a bad member is left absent.
func (i *Interaction) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode interaction: %w", err)
	}

	*i = Interaction{
		Added:     optional[bool](f["added"]),
		AddedTime: optional[time.Time](f["added_time"]),
		URI:       optional[string](f["uri"]),
		Options:   Or(optional[[]string](f["options"]), nil),
	}
	return nil
}

// IsAdded reports the interaction's added flag. An absent flag reads as false.
func (i Interaction) IsAdded() bool {
	return i.Added != nil && *i.Added
}
