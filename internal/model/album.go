package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Album is one album as returned by the albums endpoints. Every field is
// optional; nil means the server did not send a usable value.
type Album struct {
	URI                     *string
	Name                    *string
	ChannelDescription      *string
	Link                    *string
	Duration                *float64
	CreatedTime             *time.Time
	ModifiedTime            *time.Time
	Theme                   *string
	PictureCollection       *PictureCollection
	HeaderPictureCollection *PictureCollection
	Logo                    *PictureCollection
	Privacy                 *Privacy
	Embed                   *Embed
	User                    *User
	Connections             Named[Connection]
	Interactions            Named[Interaction]
}

// Embed holds the album's embed snippet.
type Embed struct {
	HTML *string `json:"html,omitempty"`
}

type albumWire struct {
	URI          *string            `json:"uri,omitempty"`
	Name         *string            `json:"name,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Link         *string            `json:"link,omitempty"`
	Duration     *float64           `json:"duration,omitempty"`
	CreatedTime  *time.Time         `json:"created_time,omitempty"`
	ModifiedTime *time.Time         `json:"modified_time,omitempty"`
	Theme        *string            `json:"theme,omitempty"`
	Pictures     *PictureCollection `json:"pictures,omitempty"`
	Header       *PictureCollection `json:"header,omitempty"`
	Logo         *PictureCollection `json:"custom_logo,omitempty"`
	Privacy      *Privacy           `json:"privacy,omitempty"`
	Embed        *Embed             `json:"embed,omitempty"`
	User         *User              `json:"user,omitempty"`
	Metadata     *metadataWire      `json:"metadata,omitempty"`
}

// UnmarshalJSON populates the album from a server document. Members that are
// missing, null or malformed are left absent; only a document that is not a
// JSON object is rejected.
func (a *Album) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode album: %w", err)
	}

	*a = Album{
		URI:                     optional[string](f["uri"]),
		Name:                    optional[string](f["name"]),
		ChannelDescription:      optional[string](f["description"]),
		Link:                    optional[string](f["link"]),
		Duration:                nonNegative(optional[float64](f["duration"])),
		CreatedTime:             optional[time.Time](f["created_time"]),
		ModifiedTime:            optional[time.Time](f["modified_time"]),
		Theme:                   optional[string](f["theme"]),
		PictureCollection:       optional[PictureCollection](f["pictures"]),
		HeaderPictureCollection: optional[PictureCollection](f["header"]),
		Logo:                    optional[PictureCollection](f["custom_logo"]),
		Privacy:                 optional[Privacy](f["privacy"]),
		Embed:                   optional[Embed](f["embed"]),
		User:                    optional[User](f["user"]),
	}
	a.Connections, a.Interactions = decodeMetadata(f)
	return nil
}

// MarshalJSON writes the album back in its server shape, omitting absent
// members.
func (a Album) MarshalJSON() ([]byte, error) {
	return json.Marshal(albumWire{
		URI:          a.URI,
		Name:         a.Name,
		Description:  a.ChannelDescription,
		Link:         a.Link,
		Duration:     a.Duration,
		CreatedTime:  a.CreatedTime,
		ModifiedTime: a.ModifiedTime,
		Theme:        a.Theme,
		Pictures:     a.PictureCollection,
		Header:       a.HeaderPictureCollection,
		Logo:         a.Logo,
		Privacy:      a.Privacy,
		Embed:        a.Embed,
		User:         a.User,
		Metadata:     encodeMetadata(a.Connections, a.Interactions),
	})
}

// Connection returns the connection registered under name.
func (a *Album) Connection(name string) (Connection, bool) {
	if a == nil {
		return Connection{}, false
	}
	return a.Connections.Lookup(name)
}

// Interaction returns the interaction registered under name.
func (a *Album) Interaction(name string) (Interaction, bool) {
	if a == nil {
		return Interaction{}, false
	}
	return a.Interactions.Lookup(name)
}

// IsFollowing reports whether the current viewer follows the album. A
// missing follow interaction means not following.
func (a *Album) IsFollowing() bool {
	follow, ok := a.Interaction(InteractionFollow)
	if !ok {
		return false
	}
	return follow.IsAdded()
}

// DurationValue returns the album length when the server reported one.
func (a *Album) DurationValue() (time.Duration, bool) {
	if a == nil || a.Duration == nil {
		return 0, false
	}
	return time.Duration(*a.Duration * float64(time.Second)), true
}
