package selfcheck

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/metrics"
	"github.com/mentallify/assistant/internal/symptom"
)

var errEmptyRemote = errors.New("remote returned no questions")

// Source tells where a result was computed.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// QuestionSource fetches a question set from a remote backend.
type QuestionSource interface {
	FetchQuestions(ctx context.Context, n int) ([]symptom.Question, error)
}

// QuestionBank loads questions remotely and falls back to the built-in list.
type QuestionBank struct {
	remote  QuestionSource
	builtin []symptom.Question
	shuffle bool
	logger  zerolog.Logger
}

// NewQuestionBank builds a bank. remote may be nil for a purely local bank.
func NewQuestionBank(remote QuestionSource, builtin []symptom.Question, logger zerolog.Logger) *QuestionBank {
	return &QuestionBank{
		remote:  remote,
		builtin: builtin,
		logger:  logger.With().Str("component", "question_bank").Logger(),
	}
}

// WithShuffle makes the local fallback return a random order.
func (b *QuestionBank) WithShuffle() *QuestionBank {
	b.shuffle = true
	return b
}

// Load returns at most n questions. Remote failures, including an empty
// remote set, are logged and replaced by the built-in list.
func (b *QuestionBank) Load(ctx context.Context, n int) ([]symptom.Question, Source) {
	if n <= 0 {
		n = symptom.DefaultQuestionCount
	}
	if b.remote != nil {
		qs, err := b.remote.FetchQuestions(ctx, n)
		if err == nil && len(qs) > 0 {
			return symptom.Truncate(qs, n), SourceRemote
		}
		if err == nil {
			err = errEmptyRemote
		}
		b.logger.Warn().Err(&TransportError{Op: "load questions", Err: err}).Msg("using built-in questions")
		metrics.Fallback(metrics.PathQuestions)
	}
	local := symptom.Truncate(b.builtin, len(b.builtin))
	if b.shuffle {
		rand.Shuffle(len(local), func(i, j int) { local[i], local[j] = local[j], local[i] })
	}
	return symptom.Truncate(local, n), SourceLocal
}
