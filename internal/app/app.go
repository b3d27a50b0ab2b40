package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/assistant"
	"github.com/mentallify/assistant/internal/auth"
	"github.com/mentallify/assistant/internal/auth/jwt"
	"github.com/mentallify/assistant/internal/chat"
	"github.com/mentallify/assistant/internal/config"
	"github.com/mentallify/assistant/internal/contact"
	"github.com/mentallify/assistant/internal/db/queries"
	"github.com/mentallify/assistant/internal/db/repository"
	"github.com/mentallify/assistant/internal/logging"
	"github.com/mentallify/assistant/internal/question"
	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/server"
	"github.com/mentallify/assistant/internal/symptom"
	"github.com/mentallify/assistant/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	hub   *ws.Hub
	http  *http.Server
}

// New bootstraps the logger, optional Postgres and Redis, services and the
// HTTP server. Missing optional stores degrade to file and built-in data.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	var (
		bankStore    question.BankStore
		messageStore *repository.ContactRepository
	)
	if cfg.Postgres.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		q := queries.New(pool)
		bankStore = repository.NewSymptomBankRepository(q)
		messageStore = repository.NewContactRepository(q)
		logger.Info().Str("host", cfg.Postgres.Host).Msg("postgres store enabled")
	} else {
		logger.Warn().Msg("PG_HOST not set; symptom bank served from file and contact messages are not stored")
	}

	var bankCache question.BankCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		bankCache = question.NewCache(a.redis, cfg.Redis.BankTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("redis cache enabled")
	}

	keywords, err := symptom.LoadKeywords(cfg.Data.KeywordsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Data.KeywordsPath).Msg("using built-in keywords")
		keywords = symptom.DefaultKeywords()
	}
	classifier := symptom.NewClassifier(keywords)

	questionSvc := question.NewService(bankCache, bankStore, question.ServiceOptions{BankPath: cfg.Data.SymptomBankPath}, logger)
	questionHTTP := question.NewHTTPHandler(questionSvc, logger)

	chatSvc := newChatService(cfg, classifier, logger)
	chatHTTP := chat.NewHTTPHandler(chatSvc, logger)

	mailer := contact.NewMailer(contact.MailerConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromEmail:    cfg.SMTP.FromEmail,
		To:           cfg.SMTP.ContactTo,
	}, logger)
	if !mailer.Configured() {
		logger.Warn().Msg("SMTP not configured; contact form submissions will fail")
	}
	var store interface {
		Save(ctx context.Context, name, email, message string) (int64, error)
	}
	if messageStore != nil {
		store = messageStore
	}
	contactSvc := contact.NewService(store, mailer, logger)
	contactHTTP := contact.NewHTTPHandler(contactSvc, cfg.FrontendRoot, cfg.SMTP.SiteContactEmail, logger)

	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte(cfg.Security.JWTSecret), Issuer: cfg.Name})
	oauthSvc := auth.NewOAuthService(auth.OAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	}, logger)
	if !oauthSvc.Configured() {
		logger.Warn().Msg("OAuth not configured (missing GOOGLE_OAUTH_CLIENT_ID or GOOGLE_OAUTH_CLIENT_SECRET)")
	}
	authHTTP := auth.NewHTTPHandlers(oauthSvc, tokens, logger)

	a.hub = ws.NewHub(logger)
	backend := assistant.NewBackend(questionSvc, chatSvc)
	builtin := symptom.DefaultBank()
	assistantWS := assistant.NewHandler(assistant.Deps{
		Questions: backend,
		Scorer:    backend,
		Chat:      backend,
		Builtin:   builtin.Questions,
		Local:     builtin.Conditions,
		Keywords:  keywords,
		Options: selfcheck.Options{
			QuestionCount:  cfg.Assistant.QuestionCount,
			AutoStartDelay: cfg.Assistant.AutoStartDelay,
		},
	}, a.hub, &server.WSUpgrader, logger)

	a.http = server.NewHTTPServer(cfg, logger, server.Dependencies{Pool: a.pool, Redis: a.redis}, server.Routes{
		Questions:      questionHTTP.HandleQuestions,
		Score:          questionHTTP.HandleScore,
		Chat:           chatHTTP.HandleChat,
		SendContact:    contactHTTP.HandleSend,
		ContactPage:    contactHTTP.HandlePage,
		GoogleStart:    authHTTP.GoogleStart,
		GoogleCallback: authHTTP.GoogleCallback,
		Me:             authHTTP.Me,
		Session:        auth.Middleware(tokens, logger),
		Assistant:      assistantWS.HandleWebSocket,
	})
	return a, nil
}

func newChatService(cfg *config.App, classifier *symptom.Classifier, logger zerolog.Logger) *chat.Service {
	var completer interface {
		Complete(ctx context.Context, message string) (string, error)
	}
	if cfg.Completion.URL != "" {
		completer = chat.NewCompleter(chat.CompleterConfig{
			URL:     cfg.Completion.URL,
			APIKey:  cfg.Completion.APIKey,
			Timeout: cfg.Completion.Timeout,
		}, logger)
	}

	var model interface {
		Predict(text string) (string, []float64, bool)
	}
	if m, err := chat.LoadModel(cfg.Data.WebModelPath); err != nil {
		logger.Warn().Err(err).Str("path", cfg.Data.WebModelPath).Msg("text model unavailable; using keyword replies")
	} else {
		model = m
	}
	return chat.NewService(completer, model, classifier, logger)
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.hub.CloseAll()

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}
