package model

import "fmt"

// View settings reported by the API.
const (
	PrivacyViewAnybody  = "anybody"
	PrivacyViewPassword = "password"
	PrivacyViewUnlisted = "unlisted"
	PrivacyViewNobody   = "nobody"
)

// Privacy describes who may see and use a resource.
type Privacy struct {
	View     *string `json:"view,omitempty"`
	Embed    *string `json:"embed,omitempty"`
	Comments *string `json:"comments,omitempty"`
	Download *bool   `json:"download,omitempty"`
	Add      *bool   `json:"add,omitempty"`
}

// UnmarshalJSON decodes each member on its own; a bad member is left absent.
func (p *Privacy) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}
	f, err := decodeFields(data)
	if err != nil {
		return fmt.Errorf("decode privacy: %w", err)
	}

	*p = Privacy{
		View:     optional[string](f["view"]),
		Embed:    optional[string](f["embed"]),
		Comments: optional[string](f["comments"]),
		Download: optional[bool](f["download"]),
		Add:      optional[bool](f["add"]),
	}
	return nil
}

// IsPublic reports whether anybody may view the resource.
func (p *Privacy) IsPublic() bool {
	return p != nil && p.View != nil && *p.View == PrivacyViewAnybody
}

// IsPasswordProtected reports whether viewing requires a password.
func (p *Privacy) IsPasswordProtected() bool {
	return p != nil && p.View != nil && *p.View == PrivacyViewPassword
}
