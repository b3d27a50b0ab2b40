package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"mentallify"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`
	FrontendRoot            string        `env:"FRONTEND_ROOT" envDefault:"web"`
	ModelsDir               string        `env:"MODELS_DIR" envDefault:"models"`

	Postgres   Postgres
	Redis      Redis
	Security   Security
	OAuth      OAuth
	SMTP       SMTP
	Data       Data
	Completion Completion
	Assistant  Assistant
}

// Postgres captures connection info for the SQL database. An empty host
// disables the SQL store.
type Postgres struct {
	Host     string `env:"PG_HOST"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Enabled reports whether a database was configured.
func (p Postgres) Enabled() bool {
	return p.Host != ""
}

// DSN builds a pgx connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis holds cache configuration. An empty address disables caching.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	BankTTL  time.Duration `env:"REDIS_BANK_TTL" envDefault:"5m"`
}

// Security stores secrets for signing session tokens.
type Security struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:"change-me"`
}

// OAuth holds OAuth provider configuration.
type OAuth struct {
	GoogleClientID     string `env:"GOOGLE_OAUTH_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_OAUTH_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_OAUTH_REDIRECT_URL"`
}

// SMTP holds email server configuration for the contact form.
type SMTP struct {
	Host             string `env:"SMTP_HOST"`
	Port             int    `env:"SMTP_PORT" envDefault:"587"`
	Username         string `env:"SMTP_USERNAME"`
	Password         string `env:"SMTP_PASSWORD"`
	FromEmail        string `env:"SMTP_FROM_EMAIL"`
	ContactTo        string `env:"CONTACT_TO"`
	SiteContactEmail string `env:"SITE_CONTACT_EMAIL" envDefault:"support@mentallify.com"`
}

// Data points at the on-disk symptom bank, keyword lists and text model.
type Data struct {
	SymptomBankPath string `env:"SYMPTOM_BANK_PATH" envDefault:"models/symptom_bank.json"`
	KeywordsPath    string `env:"KEYWORDS_PATH" envDefault:"configs/keywords.yaml"`
	WebModelPath    string `env:"WEB_MODEL_PATH" envDefault:"models/web_model.json"`
}

// Completion configures the optional chat-completion service.
type Completion struct {
	URL     string        `env:"CHAT_COMPLETION_URL"`
	APIKey  string        `env:"CHAT_COMPLETION_API_KEY"`
	Timeout time.Duration `env:"CHAT_COMPLETION_TIMEOUT" envDefault:"6s"`
}

// Assistant configures the self-check controller and its backend client.
type Assistant struct {
	APIBaseURL     string        `env:"ASSISTANT_API_BASE_URL" envDefault:"http://127.0.0.1:5000"`
	QuestionCount  int           `env:"ASSISTANT_QUESTION_COUNT" envDefault:"12"`
	AutoStartDelay time.Duration `env:"ASSISTANT_AUTOSTART_DELAY" envDefault:"700ms"`
	HTTPTimeout    time.Duration `env:"ASSISTANT_HTTP_TIMEOUT" envDefault:"8s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Assistant.QuestionCount <= 0 {
		return nil, fmt.Errorf("parse config: ASSISTANT_QUESTION_COUNT must be positive")
	}
	return cfg, nil
}
