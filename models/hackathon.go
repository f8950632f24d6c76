package models

import "encoding/json"

// Hackathon represents a single record in the hackathons collection. Nested
// structures the core never inspects (prize tiers, judges, sponsor blurbs)
// ride along in Extra.
type Hackathon struct {
	ID                  int    `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Status              string `json:"status"`
	Category            string `json:"category,omitempty"`
	IsOnline            bool   `json:"isOnline"`
	OrganizerID         int    `json:"organizerId,omitempty"`
	CurrentParticipants int    `json:"currentParticipants"`
	ImageURL            string `json:"imageUrl,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
	UpdatedAt           string `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type hackathonAlias Hackathon

// MarshalJSON folds the extras bag back into the record.
func (h Hackathon) MarshalJSON() ([]byte, error) {
	return marshalRecord(hackathonAlias(h), h.Extra)
}

// UnmarshalJSON keeps unmodeled fields instead of dropping them.
func (h *Hackathon) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*hackathonAlias)(h),
		"id", "title", "description", "status", "category", "isOnline",
		"organizerId", "currentParticipants", "imageUrl", "createdAt", "updatedAt")
	if err != nil {
		return err
	}
	h.Extra = extra
	return nil
}
