package models

import "encoding/json"

// Organization represents a single record in the organizations collection.
type Organization struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type organizationAlias Organization

func (o Organization) MarshalJSON() ([]byte, error) {
	return marshalRecord(organizationAlias(o), o.Extra)
}

func (o *Organization) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*organizationAlias)(o),
		"id", "name", "slug", "createdAt", "updatedAt")
	if err != nil {
		return err
	}
	o.Extra = extra
	return nil
}
