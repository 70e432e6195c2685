package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/campusforge/appraisal/internal/api/http"
	"github.com/campusforge/appraisal/internal/appraisal"
	"github.com/campusforge/appraisal/internal/appraisal/service"
	"github.com/campusforge/appraisal/internal/audit"
	auth "github.com/campusforge/appraisal/internal/auth/middleware"
	"github.com/campusforge/appraisal/internal/config"
	"github.com/campusforge/appraisal/internal/db"
	"github.com/campusforge/appraisal/internal/export"
	"github.com/campusforge/appraisal/internal/facultyrecords"
	"github.com/campusforge/appraisal/internal/metrics"
	"github.com/campusforge/appraisal/internal/notify"
	"github.com/campusforge/appraisal/internal/rbac"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("config", zap.Error(err))
	}
	log := newLogger(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer dbh.Close()

	store := appraisal.NewSQLStore(dbh)
	svc := service.New(store)
	events := audit.NewEventRepo(dbh)

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	// --- Collaborators ---
	var records *facultyrecords.Client
	if cfg.FacultyAPIBase != "" {
		records = facultyrecords.New(cfg.FacultyAPIBase, cfg.FacultyAPITimeout)
	}
	blobs, err := export.NewFSStore(cfg.ExportDir)
	if err != nil {
		log.Fatal("export store", zap.Error(err))
	}
	var mailer notify.Service = notify.NewConsoleService(log)
	if cfg.SendgridKey != "" {
		mailer = notify.NewSendgridService(cfg.SendgridKey, cfg.MailFromName, cfg.MailFromAddr)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.BootstrapAdmin{
		Username: cfg.AdminUser,
		PassHash: cfg.AdminPassHash,
	}))

	// Faculty surface (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("appraisal:prefill")).
			Get("/appraisals/prefill", api.PrefillHandler(records, m))

		pr.With(rbac.Require("appraisal:view-own")).
			Get("/appraisals/{year}", api.GetSubmissionHandler(svc))
		pr.With(rbac.Require("appraisal:view-own")).
			Get("/appraisals/{year}/scorecard", api.GetScorecardHandler(svc))
		pr.With(rbac.Require("appraisal:view-own")).
			Get("/appraisals/{year}/steps/{step}", api.GetStepHandler(svc))
		pr.With(rbac.Require("appraisal:save")).
			Put("/appraisals/{year}/steps/{step}", api.SaveStepHandler(svc, events, m))
		pr.With(rbac.Require("appraisal:submit")).
			Post("/appraisals/{year}/submit", api.SubmitHandler(svc, events, mailer, m, log))
		pr.With(rbac.Require("appraisal:export-own")).
			Get("/appraisals/{year}/export", api.ExportHandler(svc, blobs, m, false))

		// Committee / admin
		pr.With(rbac.RequireAny("appraisal:view-all")).
			Get("/admin/appraisals", api.ListSubmissionsHandler(svc))
		pr.With(rbac.RequireAny("appraisal:export-all")).
			Get("/admin/appraisals/export", api.RosterCSVHandler(svc))
		pr.With(rbac.RequireAny("appraisal:view-all")).
			Get("/admin/appraisals/{email}/{year}", api.AdminGetSubmissionHandler(svc))
		pr.With(rbac.RequireAny("appraisal:export-all")).
			Get("/admin/appraisals/{email}/{year}/export", api.ExportHandler(svc, blobs, m, true))
		pr.With(rbac.Require("users:set_role")).
			Put("/admin/users/{username}/role", api.SetUserRoleHandler(dbh, events))
	})

	r.Get("/meta", api.MetaHandler(cfg.AppraisalYear))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db", cfg.DBDriver),
		zap.Int("appraisal_year", cfg.AppraisalYear),
	)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zc := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		zc.Level = lvl
	}
	log, err := zc.Build()
	if err != nil {
		panic(err)
	}
	return log
}
