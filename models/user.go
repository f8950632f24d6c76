package models

import "encoding/json"

// User represents a single record in the users collection.
type User struct {
	ID            int     `json:"id"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Name          string  `json:"name,omitempty"`
	Role          string  `json:"role"`
	TotalEarnings float64 `json:"totalEarnings"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type userAlias User

func (u User) MarshalJSON() ([]byte, error) {
	return marshalRecord(userAlias(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*userAlias)(u),
		"id", "email", "username", "name", "role", "totalEarnings",
		"createdAt", "updatedAt")
	if err != nil {
		return err
	}
	u.Extra = extra
	return nil
}
