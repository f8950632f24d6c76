package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
	"github.com/dehackhq/dehack-api/query"
	"github.com/dehackhq/dehack-api/store"
)

// Hackathon exposes the hackathon routes over its stores.
type Hackathon struct {
	DB     store.HackathonStore
	ADB    store.ApplicationStore
	PDB    store.ProjectStore
	Config config.Config
}

// HackathonsHandler returns hackathons filtered by status, category and
// isOnline, paginated.
func (h Hackathon) HackathonsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get hackathons", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	filtered := all
	if status := q.Get("status"); status != "" {
		filtered = query.Filter(filtered, func(x models.Hackathon) bool { return x.Status == status })
	}
	if category := q.Get("category"); category != "" {
		filtered = query.Filter(filtered, func(x models.Hackathon) bool { return x.Category == category })
	}
	if isOnline := q.Get("isOnline"); isOnline != "" {
		want := query.IsTrue(isOnline)
		filtered = query.Filter(filtered, func(x models.Hackathon) bool { return x.IsOnline == want })
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

// HackathonCreateHandler creates a hackathon from a JSON body or a multipart
// form, with an optional image on either path.
func (h Hackathon) HackathonCreateHandler(w http.ResponseWriter, r *http.Request) {
	var payload map[string]json.RawMessage
	var imageURL string

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
			return
		}
		payload = payloadFromForm(r)

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			filename, saveErr := saveImagePart(h.Config.UploadDir, file, header)
			if saveErr != nil {
				writeImageError(w, saveErr)
				return
			}
			imageURL = h.Config.ResolveBaseURL(r) + "/uploads/" + filename
		} else if !errors.Is(err, http.ErrMissingFile) {
			config.ErrorStatus("failed to read image part", http.StatusBadRequest, w, err)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
			return
		}
		if img := stringField(payload, "image"); img != "" {
			filename, saveErr := saveImageDataURL(h.Config.UploadDir, img)
			if saveErr != nil {
				writeImageError(w, saveErr)
				return
			}
			imageURL = h.Config.ResolveBaseURL(r) + "/uploads/" + filename
			delete(payload, "image")
		}
	}

	if missing := firstMissing(payload, "title", "description"); missing != "" {
		config.ErrorStatus(missing+" is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}

	hack := models.Hackathon{
		Status:   "scheduled",
		IsOnline: true,
	}
	if err := models.ApplyFields(hack, payload, &hack); err != nil {
		config.ErrorStatus("failed to decode hackathon fields", http.StatusBadRequest, w, err)
		return
	}
	hack.ID = 0
	if imageURL != "" {
		hack.ImageURL = imageURL
	}

	if err := h.DB.Insert(r.Context(), &hack); err != nil {
		config.ErrorStatus("failed to create hackathon", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(hack)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// HackathonByIDHandler returns one hackathon enriched with its applications.
func (h Hackathon) HackathonByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["hackathon_id"])
	if err != nil {
		config.ErrorStatus("Hackathon not found", http.StatusNotFound, w, err)
		return
	}

	hack, err := h.DB.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Hackathon not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get hackathon", http.StatusInternalServerError, w, err)
		return
	}

	apps, err := h.ADB.FindByHackathonID(r.Context(), id)
	if err != nil {
		config.ErrorStatus("failed to get applications", http.StatusInternalServerError, w, err)
		return
	}

	b, err := withFields(hack, map[string]interface{}{
		"applicationsCount": len(apps),
		"applications":      apps,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HackathonProjectsHandler returns a hackathon's projects sorted by total
// score descending.
func (h Hackathon) HackathonProjectsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["hackathon_id"])
	if err != nil {
		config.ErrorStatus("Hackathon not found", http.StatusNotFound, w, err)
		return
	}

	projects, err := h.PDB.FindByHackathonID(r.Context(), id)
	if err != nil {
		config.ErrorStatus("failed to get projects", http.StatusInternalServerError, w, err)
		return
	}
	ranked := query.TopN(projects, len(projects), func(p models.Project) float64 { return p.TotalScore })

	b, err := json.Marshal(ranked)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OverviewHandler returns the hackathons currently in active status.
func (h Hackathon) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get hackathons", http.StatusInternalServerError, w, err)
		return
	}
	active := query.Filter(all, func(x models.Hackathon) bool { return x.Status == "active" })
	if active == nil {
		active = []models.Hackathon{}
	}

	b, err := json.Marshal(active)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// payloadFromForm lifts multipart form values into a JSON payload. Values for
// the typed non-string fields are parsed; everything else stays a string.
func payloadFromForm(r *http.Request) map[string]json.RawMessage {
	payload := map[string]json.RawMessage{}
	for key, vals := range r.MultipartForm.Value {
		if len(vals) == 0 {
			continue
		}
		val := vals[0]
		switch key {
		case "isOnline":
			payload[key] = json.RawMessage(strconv.FormatBool(query.IsTrue(val)))
		case "organizerId", "currentParticipants":
			if n, err := strconv.Atoi(val); err == nil {
				payload[key] = json.RawMessage(strconv.Itoa(n))
			}
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			payload[key] = b
		}
	}
	return payload
}
