package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddr)
	assert.Equal(t, 12, cfg.Assistant.QuestionCount)
	assert.Equal(t, 700*time.Millisecond, cfg.Assistant.AutoStartDelay)
	assert.False(t, cfg.Postgres.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "app")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_DATABASE", "assistant")
	t.Setenv("ASSISTANT_AUTOSTART_DELAY", "250ms")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.Postgres.Enabled())
	assert.Contains(t, cfg.Postgres.DSN(), "host=db port=5432 user=app")
	assert.Equal(t, 250*time.Millisecond, cfg.Assistant.AutoStartDelay)
}

func TestLoadRejectsBadQuestionCount(t *testing.T) {
	t.Setenv("ASSISTANT_QUESTION_COUNT", "0")
	_, err := Load(context.Background())
	assert.Error(t, err)
}
