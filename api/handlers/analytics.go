package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
	"github.com/dehackhq/dehack-api/store"
)

// Analytics exposes the analytics routes. The overview aggregates across the
// users, hackathons and applications collections.
type Analytics struct {
	DB  store.AnalyticsStore
	UDB store.UserStore
	HDB store.HackathonStore
	ADB store.ApplicationStore
}

// OverviewHandler sums tracked values per metric and reports raw collection
// counts.
func (a Analytics) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := a.UDB.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	hackathons, err := a.HDB.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get hackathons", http.StatusInternalServerError, w, err)
		return
	}
	applications, err := a.ADB.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get applications", http.StatusInternalServerError, w, err)
		return
	}
	events, err := a.DB.Find(ctx)
	if err != nil {
		config.ErrorStatus("failed to get analytics", http.StatusInternalServerError, w, err)
		return
	}

	metrics := map[string]float64{}
	for _, e := range events {
		metrics[e.Metric] += e.Value
	}

	resp := models.AnalyticsOverview{
		TotalUsers:        len(users),
		TotalHackathons:   len(hackathons),
		TotalApplications: len(applications),
		Metrics:           metrics,
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TrackHandler records one analytics event. Value defaults to 1 when absent.
func (a Analytics) TrackHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EntityType string                     `json:"entityType"`
		EntityID   int                        `json:"entityId"`
		Metric     string                     `json:"metric"`
		Value      *float64                   `json:"value"`
		Metadata   map[string]json.RawMessage `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.Metric == "" {
		config.ErrorStatus("metric is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}

	value := 1.0
	if body.Value != nil {
		value = *body.Value
	}
	if body.Metadata == nil {
		body.Metadata = map[string]json.RawMessage{}
	}

	event := models.AnalyticsEvent{
		EntityType: body.EntityType,
		EntityID:   body.EntityID,
		Metric:     body.Metric,
		Value:      value,
		Metadata:   body.Metadata,
	}
	if err := a.DB.Insert(r.Context(), &event); err != nil {
		config.ErrorStatus("failed to track analytics", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
