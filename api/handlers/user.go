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

// User exposes the user routes over its stores. The hackers routes are an
// alias for the same handlers.
type User struct {
	DB  store.UserStore
	ADB store.ApplicationStore
}

// UsersHandler returns users filtered by role and search term, paginated.
// Search matches name or username, case-insensitively.
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	all, err := u.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}

	q := r.URL.Query()
	filtered := all
	if role := q.Get("role"); role != "" {
		filtered = query.Filter(filtered, func(x models.User) bool { return x.Role == role })
	}
	if search := q.Get("search"); search != "" {
		filtered = query.Filter(filtered, func(x models.User) bool {
			return query.MatchesSearch(search, x.Name, x.Username)
		})
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

// UserCreateHandler creates a user, defaulting the role to hacker.
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if missing := firstMissing(payload, "email", "username"); missing != "" {
		config.ErrorStatus(missing+" is required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}

	user := models.User{Role: "hacker"}
	if err := models.ApplyFields(user, payload, &user); err != nil {
		config.ErrorStatus("failed to decode user fields", http.StatusBadRequest, w, err)
		return
	}
	user.ID = 0

	if err := u.DB.Insert(r.Context(), &user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UserByIDHandler returns one user enriched with their applications.
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		config.ErrorStatus("User not found", http.StatusNotFound, w, err)
		return
	}

	user, err := u.DB.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("User not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get user", http.StatusInternalServerError, w, err)
		return
	}

	apps, err := u.ADB.FindByHackerID(r.Context(), id)
	if err != nil {
		config.ErrorStatus("failed to get applications", http.StatusInternalServerError, w, err)
		return
	}

	b, err := withFields(user, map[string]interface{}{
		"applications": apps,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TopHackersHandler returns the leaderboard, sorted by total earnings
// descending and truncated to limit.
func (u User) TopHackersHandler(w http.ResponseWriter, r *http.Request) {
	all, err := u.DB.Find(r.Context())
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}

	hackers := query.Filter(all, func(x models.User) bool { return x.Role == "hacker" })
	_, limit := query.Params(r)
	top := query.TopN(hackers, limit, func(x models.User) float64 { return x.TotalEarnings })

	b, err := json.Marshal(top)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
