package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/config"
	"github.com/mentallify/assistant/internal/logging"
	"github.com/mentallify/assistant/internal/metrics"
)

// WSUpgrader handles WebSocket upgrades for the assistant endpoint. The
// frontend may be served from another origin during development.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Dependencies are the optional backing stores pinged by /v1/ping.
type Dependencies struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// Routes holds the feature handlers. Nil handlers are not mounted.
type Routes struct {
	Questions      http.HandlerFunc
	Score          http.HandlerFunc
	Chat           http.HandlerFunc
	SendContact    http.HandlerFunc
	ContactPage    http.HandlerFunc
	GoogleStart    http.HandlerFunc
	GoogleCallback http.HandlerFunc
	Me             http.HandlerFunc
	Assistant      http.HandlerFunc

	// Session wraps routes that read the caller's session token.
	Session func(http.Handler) http.Handler
}

// NewHTTPServer wires the API, frontend and operational routes.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Dependencies, routes Routes) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			logging.FromContext(r.Context()).Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	mount := func(pattern string, h http.HandlerFunc) {
		if h != nil {
			mux.HandleFunc(pattern, metrics.Instrument(pattern, h))
		}
	}
	mount("/quiz_questions", routes.Questions)
	mount("/quiz_result", routes.Score)
	mount("/chat", routes.Chat)
	mount("/send_contact", routes.SendContact)
	mount("/contact", routes.ContactPage)
	mount("/auth/google", routes.GoogleStart)
	mount("/auth/google/callback", routes.GoogleCallback)

	if routes.Me != nil {
		var me http.Handler = metrics.Instrument("/auth/me", routes.Me)
		if routes.Session != nil {
			me = routes.Session(me)
		}
		mux.Handle("/auth/me", me)
	}

	// WebSocket handlers hijack the connection, so they skip the status recorder.
	if routes.Assistant != nil {
		mux.HandleFunc("/ws/assistant", routes.Assistant)
	} else {
		mux.HandleFunc("/ws/assistant", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "assistant transport not configured", http.StatusNotImplemented)
		})
	}

	mux.Handle("/models/", http.StripPrefix("/models", FileHandler(cfg.ModelsDir)))
	mux.Handle("/", FileHandler(cfg.FrontendRoot, "front.html", "index.html"))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: logging.Middleware(logger)(mux),
	}
}

func pingDependencies(ctx context.Context, deps Dependencies) error {
	if deps.Pool != nil {
		if err := deps.Pool.Ping(ctx); err != nil {
			return err
		}
	}
	if deps.Redis != nil {
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}
