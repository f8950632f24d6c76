package models

import "encoding/json"

// JudgeSubmission is one judge's latest scorecard for a project. A resubmit
// replaces the whole entry, there is no history.
type JudgeSubmission struct {
	Scores      map[string]float64 `json:"scores"`
	SubmittedAt string             `json:"submittedAt,omitempty"`
}

// Project represents a single record in the projects collection. Team rosters
// and track selections are carried opaquely in Extra.
type Project struct {
	ID          int                        `json:"id"`
	HackathonID int                        `json:"hackathonId"`
	Title       string                     `json:"title"`
	Status      string                     `json:"status"`
	JudgeScores map[string]JudgeSubmission `json:"judgeScores"`
	TotalScore  float64                    `json:"totalScore"`
	CreatedAt   string                     `json:"createdAt,omitempty"`
	UpdatedAt   string                     `json:"updatedAt,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type projectAlias Project

func (p Project) MarshalJSON() ([]byte, error) {
	return marshalRecord(projectAlias(p), p.Extra)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalRecord(data, (*projectAlias)(p),
		"id", "hackathonId", "title", "status", "judgeScores", "totalScore",
		"createdAt", "updatedAt")
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// RecomputeTotalScore sets TotalScore to the mean, across judges, of each
// judge's own criterion sum. A judge whose entry is missing its scores map is
// skipped entirely; a judge who submitted an empty map still counts and
// contributes zero.
func (p *Project) RecomputeTotalScore() {
	judges := 0
	total := 0.0
	for _, sub := range p.JudgeScores {
		if sub.Scores == nil {
			continue
		}
		judges++
		for _, v := range sub.Scores {
			total += v
		}
	}
	if judges == 0 {
		p.TotalScore = 0
		return
	}
	p.TotalScore = total / float64(judges)
}
