package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"talkschedule/internal/delivery/http/controllers"
	"talkschedule/internal/delivery/http/helpers"
	"talkschedule/internal/delivery/http/middleware"
)

// RouterConfig holds everything NewRouter wires into the mux.
type RouterConfig struct {
	Logger         *slog.Logger
	Talks          *controllers.TalkController
	Metrics        *middleware.Metrics
	AllowedOrigins []string
	// StaticDir, when set, is served at / for the browser client.
	StaticDir string
	// Ping reports store health for /healthz. Nil means always healthy.
	Ping func(ctx context.Context) error
}

// NewRouter initializes the HTTP router with all application routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /api/talks", cfg.Talks.ListTalks)
	mux.HandleFunc("POST /api/talks", cfg.Talks.CreateTalk)
	mux.HandleFunc("DELETE /api/talks/{id}", cfg.Talks.DeleteTalk)
	mux.HandleFunc("GET /api/categories", cfg.Talks.ListCategories)
	mux.HandleFunc("GET /api/slots", cfg.Talks.ListSlots)
	mux.HandleFunc("GET /api/agenda", cfg.Talks.Agenda)

	// Operations
	mux.HandleFunc("GET /healthz", healthz(cfg.Ping))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	var handler http.Handler = mux
	if cfg.Metrics != nil {
		handler = cfg.Metrics.Middleware(handler)
	}
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthz(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "store unavailable: "+err.Error())
				return
			}
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
