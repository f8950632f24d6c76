package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
	"github.com/dehackhq/dehack-api/store"
)

// Collection exposes the read-only passthrough routes plus the misc POST
// collections (comments, messages, notifications) over the raw store.
type Collection struct {
	DB store.CollectionStore
}

// ListHandler serves the full contents of one named collection.
func (c Collection) ListHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := c.DB.FindAll(r.Context(), name)
		if err != nil {
			config.ErrorStatus("failed to get "+name, http.StatusInternalServerError, w, err)
			return
		}

		b, err := json.Marshal(records)
		if err != nil {
			config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

// ChartByIDHandler returns one chart. Chart ids are strings.
func (c Collection) ChartByIDHandler(w http.ResponseWriter, r *http.Request) {
	chart, err := c.DB.FindByStringID(r.Context(), "charts", mux.Vars(r)["chart_id"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Chart not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get chart", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(chart)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// JudgeByIDHandler returns one judge.
func (c Collection) JudgeByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["judge_id"])
	if err != nil {
		config.ErrorStatus("Judge not found", http.StatusNotFound, w, err)
		return
	}

	judge, err := c.DB.FindByID(r.Context(), "judges", id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			config.ErrorStatus("Judge not found", http.StatusNotFound, w, err)
			return
		}
		config.ErrorStatus("failed to get judge", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(judge)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CommentCreateHandler appends a comment with zero likes and no replies.
func (c Collection) CommentCreateHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Author  string `json:"author"`
		Avatar  string `json:"avatar"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	rec, err := c.DB.Insert(r.Context(), "comments", func(id int) map[string]interface{} {
		return map[string]interface{}{
			"id":        id,
			"author":    body.Author,
			"avatar":    body.Avatar,
			"content":   body.Content,
			"timestamp": models.Now(),
			"likes":     0,
			"replies":   []interface{}{},
		}
	})
	if err != nil {
		config.ErrorStatus("failed to create comment", http.StatusInternalServerError, w, err)
		return
	}
	c.writeCreated(w, rec)
}

// MessageCreateHandler appends a message, initially unread.
func (c Collection) MessageCreateHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Sender  string `json:"sender"`
		Avatar  string `json:"avatar"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	rec, err := c.DB.Insert(r.Context(), "messages", func(id int) map[string]interface{} {
		return map[string]interface{}{
			"id":        id,
			"sender":    body.Sender,
			"avatar":    body.Avatar,
			"content":   body.Content,
			"timestamp": models.Now(),
			"unread":    true,
		}
	})
	if err != nil {
		config.ErrorStatus("failed to create message", http.StatusInternalServerError, w, err)
		return
	}
	c.writeCreated(w, rec)
}

// NotificationCreateHandler appends a notification, initially unread.
func (c Collection) NotificationCreateHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	rec, err := c.DB.Insert(r.Context(), "notifications", func(id int) map[string]interface{} {
		return map[string]interface{}{
			"id":        id,
			"type":      body.Type,
			"title":     body.Title,
			"content":   body.Content,
			"timestamp": models.Now(),
			"unread":    true,
		}
	})
	if err != nil {
		config.ErrorStatus("failed to create notification", http.StatusInternalServerError, w, err)
		return
	}
	c.writeCreated(w, rec)
}

func (c Collection) writeCreated(w http.ResponseWriter, rec map[string]interface{}) {
	b, err := json.Marshal(rec)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
