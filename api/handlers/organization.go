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

// Organization exposes the organization routes over its stores.
type Organization struct {
	DB  store.OrganizationStore
	HDB store.HackathonStore
}

// OrganizationsHandler returns organizations matching the search term,
// paginated.
func (o Organization) OrganizationsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := o.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get organizations", http.StatusInternalServerError, w, err)
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		all = query.Filter(all, func(x models.Organization) bool {
			return query.MatchesSearch(search, x.Name)
		})
	}

	page, limit := query.Params(r)
	window, meta := query.Paginate(all, page, limit)

	b, err := json.Marshal(models.PagedResponse{Data: window, Pagination: meta})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OrganizationByIDHandler returns one organization enriched with the
// hackathons it organizes.
func (o Organization) OrganizationByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["organization_id"])
	if err != nil {
		config.ErrorStatus("Organization not found", http.StatusNotFound, w, err)
		return
	}

	org, err := o.DB.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Organization not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get organization", http.StatusInternalServerError, w, err)
		return
	}

	all, err := o.HDB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get hackathons", http.StatusInternalServerError, w, err)
		return
	}
	hackathons := query.Filter(all, func(x models.Hackathon) bool { return x.OrganizerID == id })
	if hackathons == nil {
		hackathons = []models.Hackathon{}
	}

	b, err := withFields(org, map[string]interface{}{
		"hackathons": hackathons,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
