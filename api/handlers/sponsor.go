package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
	"github.com/dehackhq/dehack-api/query"
	"github.com/dehackhq/dehack-api/store"
)

// Sponsor exposes the sponsor routes over its store.
type Sponsor struct {
	DB store.SponsorStore
}

// SponsorsHandler returns sponsors, optionally filtered by hackathonId.
func (s Sponsor) SponsorsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := s.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get sponsors", http.StatusInternalServerError, w, err)
		return
	}

	if raw := r.URL.Query().Get("hackathonId"); raw != "" {
		if hackathonID, convErr := strconv.Atoi(raw); convErr == nil {
			all = query.Filter(all, func(x models.Sponsor) bool { return x.HackathonID == hackathonID })
		}
	}
	if all == nil {
		all = []models.Sponsor{}
	}

	b, err := json.Marshal(all)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SponsorCreateHandler creates a sponsor. Sponsors are auto-approved.
func (s Sponsor) SponsorCreateHandler(w http.ResponseWriter, r *http.Request) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if missing := firstMissing(payload, "hackathonId", "companyName"); missing != "" {
		config.ErrorStatus(missing+" is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}

	sp := models.Sponsor{Status: "approved"}
	if err := models.ApplyFields(sp, payload, &sp); err != nil {
		config.ErrorStatus("failed to decode sponsor fields", http.StatusBadRequest, w, err)
		return
	}
	sp.ID = 0

	if err := s.DB.Insert(r.Context(), &sp); err != nil {
		config.ErrorStatus("failed to create sponsor", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(sp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// SponsorByIDHandler returns one sponsor.
func (s Sponsor) SponsorByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["sponsor_id"])
	if err != nil {
		config.ErrorStatus("Sponsor not found", http.StatusNotFound, w, err)
		return
	}

	sp, err := s.DB.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Sponsor not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get sponsor", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(sp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SponsorUpdateHandler patches a sponsor's fields by id, typically the
// status.
func (s Sponsor) SponsorUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["sponsor_id"])
	if err != nil {
		config.ErrorStatus("Sponsor not found", http.StatusNotFound, w, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	sp, err := s.DB.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Sponsor not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update sponsor", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(sp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
