package question

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentallify/assistant/internal/symptom"
)

type memoryCache struct {
	bank *symptom.Bank
	sets int
	err  error
}

func (c *memoryCache) Get(context.Context) (*symptom.Bank, error) {
	return c.bank, c.err
}

func (c *memoryCache) Set(_ context.Context, bank symptom.Bank) error {
	c.sets++
	c.bank = &bank
	return nil
}

type stubStore struct {
	bank  symptom.Bank
	err   error
	calls int
}

func (s *stubStore) Load(context.Context) (symptom.Bank, error) {
	s.calls++
	return s.bank, s.err
}

func storedBank() symptom.Bank {
	return symptom.Bank{
		Questions:  []symptom.Question{{Text: "Stored?", SymptomKey: "stored"}},
		Conditions: []symptom.Condition{{Name: "Stored", Symptoms: []string{"stored"}}},
	}
}

func TestServicePrefersCache(t *testing.T) {
	cached := storedBank()
	cached.Questions[0].Text = "Cached?"
	cache := &memoryCache{bank: &cached}
	store := &stubStore{bank: storedBank()}
	svc := NewService(cache, store, ServiceOptions{}, zerolog.Nop())

	assert.Equal(t, "Cached?", svc.Bank(context.Background()).Questions[0].Text)
	assert.Zero(t, store.calls)
}

func TestServiceFillsCacheFromStore(t *testing.T) {
	cache := &memoryCache{}
	store := &stubStore{bank: storedBank()}
	svc := NewService(cache, store, ServiceOptions{}, zerolog.Nop())

	bank := svc.Bank(context.Background())
	assert.Equal(t, storedBank(), bank)
	assert.Equal(t, 1, cache.sets)

	svc.Bank(context.Background())
	assert.Equal(t, 1, store.calls)
}

func TestServiceFallsBackToFileThenBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symptom_bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"diseases":{"Only":{"symptoms":["x"]}},"questions":[{"text":"X?","symptom_key":"x"}]}`), 0o600))

	svc := NewService(&memoryCache{err: errors.New("redis down")}, &stubStore{err: errors.New("db down")}, ServiceOptions{BankPath: path}, zerolog.Nop())
	bank := svc.Bank(context.Background())
	assert.Equal(t, "Only", bank.Conditions[0].Name)

	svc = NewService(nil, nil, ServiceOptions{BankPath: filepath.Join(t.TempDir(), "missing.json")}, zerolog.Nop())
	assert.Equal(t, symptom.DefaultBank(), svc.Bank(context.Background()))
}

func TestServiceQuestionsSample(t *testing.T) {
	svc := NewService(nil, nil, ServiceOptions{}, zerolog.Nop())
	ctx := context.Background()

	qs := svc.Questions(ctx, 5)
	assert.Len(t, qs, 5)
	assert.Subset(t, symptom.BuiltinQuestions(), qs)

	assert.Len(t, svc.Questions(ctx, 100), len(symptom.BuiltinQuestions()))
	assert.Len(t, svc.Questions(ctx, 0), symptom.DefaultQuestionCount)
	assert.Len(t, svc.Questions(ctx, -3), symptom.DefaultQuestionCount)
}

func TestServiceScore(t *testing.T) {
	svc := NewService(nil, &stubStore{bank: storedBank()}, ServiceOptions{}, zerolog.Nop())
	results := svc.Score(context.Background(), []string{"stored"})
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Score)
}
