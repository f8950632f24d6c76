package models

import "encoding/json"

// Sponsor represents a single record in the sponsors collection.
type Sponsor struct {
	ID                 int     `json:"id"`
	HackathonID        int     `json:"hackathonId"`
	CompanyName        string  `json:"companyName"`
	ContributionAmount float64 `json:"contributionAmount,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"createdAt,omitempty"`
	UpdatedAt          string  `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type sponsorAlias Sponsor

func (s Sponsor) MarshalJSON() ([]byte, error) {
	return marshalRecord(sponsorAlias(s), s.Extra)
}

func (s *Sponsor) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*sponsorAlias)(s),
		"id", "hackathonId", "companyName", "contributionAmount", "status",
		"createdAt", "updatedAt")
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}
