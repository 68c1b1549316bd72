package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// User is the owner of an album. The same user may be referenced by many
// records.
type User struct {
	URI          *string
	Name         *string
	Link         *string
	Location     *string
	Bio          *string
	Account      *string
	CreatedTime  *time.Time
	Pictures     *PictureCollection
	Connections  Named[Connection]
	Interactions Named[Interaction]
}

type userWire struct {
	URI         *string            `json:"uri,omitempty"`
	Name        *string            `json:"name,omitempty"`
	Link        *string            `json:"link,omitempty"`
	Location    *string            `json:"location,omitempty"`
	Bio         *string            `json:"bio,omitempty"`
	Account     *string            `json:"account,omitempty"`
	CreatedTime *time.Time         `json:"created_time,omitempty"`
	Pictures    *PictureCollection `json:"pictures,omitempty"`
	Metadata    *metadataWire      `json:"metadata,omitempty"`
}

// UnmarshalJSON decodes each member on its own so one bad value only costs
// that member.
func (u *User) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode user: %w", err)
	}

	*u = User{
		URI:         optional[string](f["uri"]),
		Name:        optional[string](f["name"]),
		Link:        optional[string](f["link"]),
		Location:    optional[string](f["location"]),
		Bio:         optional[string](f["bio"]),
		Account:     optional[string](f["account"]),
		CreatedTime: optional[time.Time](f["created_time"]),
		Pictures:    optional[PictureCollection](f["pictures"]),
	}
	u.Connections, u.Interactions = decodeMetadata(f)
	return nil
}

// MarshalJSON writes the user back in its server shape.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(userWire{
		URI:         u.URI,
		Name:        u.Name,
		Link:        u.Link,
		Location:    u.Location,
		Bio:         u.Bio,
		Account:     u.Account,
		CreatedTime: u.CreatedTime,
		Pictures:    u.Pictures,
		Metadata:    encodeMetadata(u.Connections, u.Interactions),
	})
}

// Connection returns the user's connection registered under name.
func (u *User) Connection(name string) (Connection, bool) {
	if u == nil {
		return Connection{}, false
	}
	return u.Connections.Lookup(name)
}

// Interaction returns the user's interaction registered under name.
func (u *User) Interaction(name string) (Interaction, bool) {
	if u == nil {
		return Interaction{}, false
	}
	return u.Interactions.Lookup(name)
}
