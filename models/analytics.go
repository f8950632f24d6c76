package models

import "encoding/json"

// AnalyticsEvent is one tracked metric sample in the analytics collection.
type AnalyticsEvent struct {
	ID         int                        `json:"id"`
	EntityType string                     `json:"entityType,omitempty"`
	EntityID   int                        `json:"entityId,omitempty"`
	Metric     string                     `json:"metric"`
	Value      float64                    `json:"value"`
	Metadata   map[string]json.RawMessage `json:"metadata"`
	CreatedAt  string                     `json:"createdAt,omitempty"`
}

// AnalyticsOverview is the aggregate served by the analytics overview
// endpoint: per-metric value sums plus raw collection counts.
type AnalyticsOverview struct {
	TotalUsers        int                `json:"totalUsers"`
	TotalHackathons   int                `json:"totalHackathons"`
	TotalApplications int                `json:"totalApplications"`
	Metrics           map[string]float64 `json:"metrics"`
}
