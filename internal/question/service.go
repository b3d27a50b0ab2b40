package question

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/symptom"
)

// BankCache defines cache behavior (implemented by Redis-backed Cache).
type BankCache interface {
	Get(ctx context.Context) (*symptom.Bank, error)
	Set(ctx context.Context, bank symptom.Bank) error
}

// BankStore loads the bank from durable storage.
type BankStore interface {
	Load(ctx context.Context) (symptom.Bank, error)
}

// Service resolves the symptom bank with the priority cache -> database ->
// bank file -> built-in bank, and answers question and scoring requests.
type Service struct {
	cache    BankCache
	store    BankStore
	bankPath string
	logger   zerolog.Logger

	localOnce sync.Once
	local     symptom.Bank
}

type ServiceOptions struct {
	BankPath string
}

// NewService builds a service; cache and store may be nil.
func NewService(cache BankCache, store BankStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		cache:    cache,
		store:    store,
		bankPath: opts.BankPath,
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// Bank returns the highest-priority bank that is available.
func (s *Service) Bank(ctx context.Context) symptom.Bank {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil && len(cached.Questions) > 0 {
			return *cached
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("bank cache read failed")
		}
	}
	if s.store != nil {
		bank, err := s.store.Load(ctx)
		if err == nil {
			if s.cache != nil {
				if err := s.cache.Set(ctx, bank); err != nil {
					s.logger.Warn().Err(err).Msg("failed to cache bank")
				}
			}
			return bank
		}
		s.logger.Warn().Err(err).Msg("database bank unavailable")
	}
	return s.localBank()
}

func (s *Service) localBank() symptom.Bank {
	s.localOnce.Do(func() {
		s.local = symptom.DefaultBank()
		if s.bankPath == "" {
			return
		}
		bank, err := symptom.LoadBank(s.bankPath)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", s.bankPath).Msg("using built-in symptom bank")
			return
		}
		if len(bank.Questions) == 0 {
			bank.Questions = symptom.BuiltinQuestions()
		}
		if len(bank.Conditions) == 0 {
			bank.Conditions = symptom.DefaultConditions()
		}
		s.local = bank
	})
	return s.local
}

// Questions returns a random sample of at most n questions. A non-positive n
// selects the default count.
func (s *Service) Questions(ctx context.Context, n int) []symptom.Question {
	if n <= 0 {
		n = symptom.DefaultQuestionCount
	}
	qs := append([]symptom.Question{}, s.Bank(ctx).Questions...)
	rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	if len(qs) > n {
		qs = qs[:n]
	}
	return qs
}

// Score ranks every stored condition against the yes-answered symptoms.
func (s *Service) Score(ctx context.Context, symptoms []string) []symptom.ScoreResult {
	return symptom.Score(s.Bank(ctx).Conditions, symptoms)
}
