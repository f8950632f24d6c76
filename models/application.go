package models

import "encoding/json"

// Application links a hacker to a hackathon. Neither foreign key is enforced;
// a dangling reference just yields an empty join on the read side.
type Application struct {
	ID          int    `json:"id"`
	HackathonID int    `json:"hackathonId"`
	HackerID    int    `json:"hackerId"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type applicationAlias Application

func (a Application) MarshalJSON() ([]byte, error) {
	return marshalRecord(applicationAlias(a), a.Extra)
}

func (a *Application) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*applicationAlias)(a),
		"id", "hackathonId", "hackerId", "status", "createdAt", "updatedAt")
	if err != nil {
		return err
	}
	a.Extra = extra
	return nil
}
