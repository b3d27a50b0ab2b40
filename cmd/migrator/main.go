package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mentallify/assistant/internal/config"
	"github.com/mentallify/assistant/internal/db/migrations"
	"github.com/mentallify/assistant/internal/db/queries"
	"github.com/mentallify/assistant/internal/db/repository"
	"github.com/mentallify/assistant/internal/question"
	"github.com/mentallify/assistant/internal/symptom"
)

func main() {
	var (
		command  = flag.String("command", "up", "Migration command: up, down, status, or seed")
		bankPath = flag.String("bank", "", "Symptom bank JSON imported by seed (default SYMPTOM_BANK_PATH)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if !cfg.Postgres.Enabled() {
		log.Fatal().Msg("PG_HOST environment variable is required")
	}
	if cfg.Postgres.User == "" || cfg.Postgres.Database == "" {
		log.Fatal().Msg("PG_USER and PG_DATABASE environment variables are required")
	}
	dsn := cfg.Postgres.DSN()

	if *command == "seed" {
		path := *bankPath
		if path == "" {
			path = cfg.Data.SymptomBankPath
		}
		if err := seed(ctx, dsn, path, cfg.Redis); err != nil {
			log.Fatal().Err(err).Str("bank", path).Msg("failed to seed symptom bank")
		}
		return
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Msg("connected to database")

	goose.SetBaseFS(migrations.FS)
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, "."); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Msg("migrations applied successfully")

	case "down":
		if err := goose.DownContext(ctx, db, "."); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		log.Info().Msg("migrations rolled back successfully")

	case "status":
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, status, or seed")
	}
}

// seed replaces the stored symptom bank with the JSON file at path in one
// transaction, then drops the cached copy so servers pick it up.
func seed(ctx context.Context, dsn, path string, rc config.Redis) error {
	bank, err := symptom.LoadBank(path)
	if err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	repo := repository.NewSymptomBankRepository(queries.New(conn).WithTx(tx))
	if err := repo.Replace(ctx, bank); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Info().
		Int("questions", len(bank.Questions)).
		Int("conditions", len(bank.Conditions)).
		Msg("symptom bank seeded")

	if rc.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: rc.Addr, DB: rc.DB})
	defer client.Close()
	if err := question.NewCache(client, rc.BankTTL).Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate cached symptom bank")
	}
	return nil
}
