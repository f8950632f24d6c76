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

// Project exposes the project routes over its store.
type Project struct {
	DB store.ProjectStore
}

// ProjectsHandler returns projects, optionally filtered by hackathonId and
// status, paginated.
func (p Project) ProjectsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := p.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get projects", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	filtered := all
	if raw := q.Get("hackathonId"); raw != "" {
		if hackathonID, convErr := strconv.Atoi(raw); convErr == nil {
			filtered = query.Filter(filtered, func(x models.Project) bool { return x.HackathonID == hackathonID })
		}
	}
	if status := q.Get("status"); status != "" {
		filtered = query.Filter(filtered, func(x models.Project) bool { return x.Status == status })
	}

	page, limit := query.Params(r)
	window, meta := query.Paginate(filtered, page, limit)

	b, err := json.Marshal(models.PagedResponse{Data: window, Pagination: meta})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ProjectCreateHandler creates a project, starting in submitted status with
// an empty scorecard.
func (p Project) ProjectCreateHandler(w http.ResponseWriter, r *http.Request) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if missing := firstMissing(payload, "hackathonId", "title"); missing != "" {
		config.ErrorStatus(missing+" is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}

	proj := models.Project{Status: "submitted"}
	if err := models.ApplyFields(proj, payload, &proj); err != nil {
		config.ErrorStatus("failed to decode project fields", http.StatusBadRequest, w, err)
		return
	}
	proj.ID = 0
	proj.JudgeScores = map[string]models.JudgeSubmission{}
	proj.TotalScore = 0

	if err := p.DB.Insert(r.Context(), &proj); err != nil {
		config.ErrorStatus("failed to create project", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(proj)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ProjectByIDHandler returns one project.
func (p Project) ProjectByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["project_id"])
	if err != nil {
		config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
		return
	}

	proj, err := p.DB.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get project", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(proj)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ProjectUpdateHandler patches a project's fields by id.
func (p Project) ProjectUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["project_id"])
	if err != nil {
		config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	proj, err := p.DB.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to update project", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(proj)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ProjectJudgeHandler records a judge's scorecard for a project. The latest
// submission per judge wins and the total score is recomputed.
func (p Project) ProjectJudgeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["project_id"])
	if err != nil {
		config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
		return
	}

	var body struct {
		JudgeID string             `json:"judgeId"`
		Scores  map[string]float64 `json:"scores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.JudgeID == "" {
		config.ErrorStatus("judgeId is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}
	if body.Scores == nil {
		body.Scores = map[string]float64{}
	}

	proj, err := p.DB.Judge(r.Context(), id, body.JudgeID, body.Scores)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Project not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to judge project", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(proj)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
