package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dehackhq/dehack-api/api"
	"github.com/dehackhq/dehack-api/config"
	"github.com/dehackhq/dehack-api/models"
	"github.com/dehackhq/dehack-api/store"
)

// App stores the router, data store and config, so it can be reused
type App struct {
	Router *mux.Router
	DB     *store.Store
	Config config.Config
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.RequestLogger, api.MetricsMiddleware)

	h := Hackathon{
		DB:     store.NewHackathonStore(a.DB),
		ADB:    store.NewApplicationStore(a.DB),
		PDB:    store.NewProjectStore(a.DB),
		Config: a.Config,
	}
	u := User{DB: store.NewUserStore(a.DB), ADB: store.NewApplicationStore(a.DB)}
	o := Organization{DB: store.NewOrganizationStore(a.DB), HDB: store.NewHackathonStore(a.DB)}
	p := Project{DB: store.NewProjectStore(a.DB)}
	sp := Sponsor{DB: store.NewSponsorStore(a.DB)}
	an := Analytics{
		DB:  store.NewAnalyticsStore(a.DB),
		UDB: store.NewUserStore(a.DB),
		HDB: store.NewHackathonStore(a.DB),
		ADB: store.NewApplicationStore(a.DB),
	}
	col := Collection{DB: store.NewCollectionStore(a.DB)}
	up := Upload{Config: a.Config}

	// healthchex
	r.HandleFunc("/", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.HandleFunc("/hackathons", h.HackathonsHandler).Methods("GET")
	apiCreate.HandleFunc("/hackathons", h.HackathonCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/hackathons/{hackathon_id}", h.HackathonByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/hackathons/{hackathon_id}/projects", h.HackathonProjectsHandler).Methods("GET")
	apiCreate.HandleFunc("/overview", h.OverviewHandler).Methods("GET")

	apiCreate.HandleFunc("/users", u.UsersHandler).Methods("GET")
	apiCreate.HandleFunc("/users", u.UserCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/users/top/hackers", u.TopHackersHandler).Methods("GET")
	apiCreate.HandleFunc("/users/{user_id}", u.UserByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/hackers", u.UsersHandler).Methods("GET")
	apiCreate.HandleFunc("/hackers", u.UserCreateHandler).Methods("POST")

	apiCreate.HandleFunc("/organizations", o.OrganizationsHandler).Methods("GET")
	apiCreate.HandleFunc("/organizations/{organization_id}", o.OrganizationByIDHandler).Methods("GET")

	apiCreate.HandleFunc("/projects", p.ProjectsHandler).Methods("GET")
	apiCreate.HandleFunc("/projects", p.ProjectCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/projects/{project_id}", p.ProjectByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/projects/{project_id}", p.ProjectUpdateHandler).Methods("PUT")
	apiCreate.HandleFunc("/projects/{project_id}/judge", p.ProjectJudgeHandler).Methods("POST")

	apiCreate.HandleFunc("/sponsors", sp.SponsorsHandler).Methods("GET")
	apiCreate.HandleFunc("/sponsors", sp.SponsorCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/sponsors/{sponsor_id}", sp.SponsorByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/sponsors/{sponsor_id}", sp.SponsorUpdateHandler).Methods("PUT")

	apiCreate.HandleFunc("/analytics/overview", an.OverviewHandler).Methods("GET")
	apiCreate.HandleFunc("/analytics/track", an.TrackHandler).Methods("POST")

	apiCreate.HandleFunc("/uploads", up.UploadHandler).Methods("POST")

	apiCreate.HandleFunc("/time-slots", col.ListHandler("timeSlots")).Methods("GET")
	apiCreate.HandleFunc("/countries", col.ListHandler("countries")).Methods("GET")
	apiCreate.HandleFunc("/faqs", col.ListHandler("faqs")).Methods("GET")
	apiCreate.HandleFunc("/comments", col.ListHandler("comments")).Methods("GET")
	apiCreate.HandleFunc("/comments", col.CommentCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/messages", col.ListHandler("messages")).Methods("GET")
	apiCreate.HandleFunc("/messages", col.MessageCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/notifications", col.ListHandler("notifications")).Methods("GET")
	apiCreate.HandleFunc("/notifications", col.NotificationCreateHandler).Methods("POST")
	apiCreate.HandleFunc("/compatibility", col.ListHandler("compatibility")).Methods("GET")
	apiCreate.HandleFunc("/affiliate-center", col.ListHandler("affiliateCenter")).Methods("GET")
	apiCreate.HandleFunc("/slider", col.ListHandler("slider")).Methods("GET")
	apiCreate.HandleFunc("/charts", col.ListHandler("charts")).Methods("GET")
	apiCreate.HandleFunc("/charts/{chart_id}", col.ChartByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/judges", col.ListHandler("judges")).Methods("GET")
	apiCreate.HandleFunc("/judges/{judge_id}", col.JudgeByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/product-activity", col.ListHandler("productActivity")).Methods("GET")
	apiCreate.HandleFunc("/pricing", col.ListHandler("pricing")).Methods("GET")
	apiCreate.HandleFunc("/income", col.ListHandler("income")).Methods("GET")
	apiCreate.HandleFunc("/payouts", col.ListHandler("payouts")).Methods("GET")
	apiCreate.HandleFunc("/payout-statistics", col.ListHandler("payoutStatistics")).Methods("GET")
	apiCreate.HandleFunc("/statement-statistics", col.ListHandler("statementStatistics")).Methods("GET")
	apiCreate.HandleFunc("/transactions", col.ListHandler("transactions")).Methods("GET")

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.Config.UploadDir)))).Methods("GET")

	return r
}

// Initialize opens the data store, seeds the collection files and builds the
// router
func (a *App) Initialize() error {
	db, err := store.New(a.Config.DataDir)
	if err != nil {
		return err
	}
	a.DB = db

	if err := db.InitCollections(store.DefaultCollections...); err != nil {
		return err
	}
	if err := os.MkdirAll(a.Config.UploadDir, 0o755); err != nil {
		return err
	}

	api.RegisterMetrics()
	a.Router = a.New()
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthCheckResponse{
		Message:   "DeHack API is running",
		Version:   "1.0.0",
		Status:    "healthy",
		Timestamp: models.Now(),
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

// withFields re-encodes a record with response-only fields attached, used by
// the detail endpoints that embed related records.
func withFields(rec interface{}, fields map[string]interface{}) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}
	for k, v := range fields {
		fb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = fb
	}
	return json.Marshal(merged)
}

// stringField pulls a string out of a decoded JSON payload, "" when absent or
// not a string.
func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// firstMissing returns the first of the required fields that is absent or
// empty in the payload, "" when all are present.
func firstMissing(payload map[string]json.RawMessage, required ...string) string {
	for _, field := range required {
		raw, ok := payload[field]
		if !ok || len(raw) == 0 || string(raw) == `null` || string(raw) == `""` {
			return field
		}
	}
	return ""
}
