package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/advisor"
	"job-recommender/internal/analyses"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/llm/gemini"
	"job-recommender/internal/services/health"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/server"
	"job-recommender/internal/web"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	LLM             *llm.Lazy
	JobSearch       *jobsearch.Client
	Advisor         *advisor.Service
	SessionsRepo    *analyses.MemoryRepo
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	WebHandler      *web.Handler
	JanitorInterval time.Duration
}

// Build wires services and handlers. Credentials are not required here:
// the Gemini client and the Apify token are resolved on first use.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	gen := llm.NewLazy(gemini.Factory(gemini.Options{
		Model:       cfg.GeminiModel,
		Temperature: llm.Temperature(cfg.GeminiTemperature),
		BaseURL:     cfg.GeminiBaseURL,
	}))
	jobs := jobsearch.NewClient(jobsearch.Options{
		BaseURL:  cfg.ApifyBaseURL,
		Location: cfg.JobSearchLocation,
		Rows:     cfg.JobSearchRows,
	})
	adv := &advisor.Service{LLM: gen, Jobs: jobs}

	repo := analyses.NewMemoryRepo()
	svc := &analyses.Service{
		Repo:           repo,
		Advisor:        adv,
		TTL:            cfg.SessionTTL,
		MaxUploadBytes: cfg.MaxUploadBytes,
		SearchDefaults: jobs.Defaults(),
	}

	app := &App{
		Config:          cfg,
		LLM:             gen,
		JobSearch:       jobs,
		Advisor:         adv,
		SessionsRepo:    repo,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc),
		WebHandler:      web.NewHandler(svc, jobs.Defaults().Location),
		JanitorInterval: janitorInterval(cfg.SessionTTL),
	}
	if app.AnalysisHandler == nil || app.WebHandler == nil {
		return nil, errors.New("failed to initialize handlers")
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		WebHandler:      app.WebHandler,
		Health:          health.NewService(),
	})
	return app, nil
}

// StartJanitor evicts expired sessions in the background until ctx is done.
func (a *App) StartJanitor(ctx context.Context) {
	go analyses.RunJanitor(ctx, a.SessionsRepo, a.JanitorInterval)
}

func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
