package selfcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentallify/assistant/internal/symptom"
)

type stubQuestions struct {
	questions []symptom.Question
	err       error
	calls     int
	gotN      int
}

func (s *stubQuestions) FetchQuestions(_ context.Context, n int) ([]symptom.Question, error) {
	s.calls++
	s.gotN = n
	return s.questions, s.err
}

type stubScorer struct {
	results []symptom.ScoreResult
	err     error
	got     []string
}

func (s *stubScorer) ScoreRemote(_ context.Context, symptoms []string) ([]symptom.ScoreResult, error) {
	s.got = symptoms
	return s.results, s.err
}

func TestQuestionBankPrefersRemote(t *testing.T) {
	remote := &stubQuestions{questions: symptom.BuiltinQuestions()}
	bank := NewQuestionBank(remote, threeQuestions(), zerolog.Nop())

	qs, src := bank.Load(context.Background(), 5)
	assert.Equal(t, SourceRemote, src)
	assert.Len(t, qs, 5)
	assert.Equal(t, 5, remote.gotN)
}

func TestQuestionBankFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		remote *stubQuestions
	}{
		{"transport error", &stubQuestions{err: errors.New("connection refused")}},
		{"empty set", &stubQuestions{questions: []symptom.Question{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := NewQuestionBank(tt.remote, threeQuestions(), zerolog.Nop())
			qs, src := bank.Load(context.Background(), 12)
			assert.Equal(t, SourceLocal, src)
			assert.Equal(t, threeQuestions(), qs)
		})
	}
}

func TestQuestionBankDefaultsCount(t *testing.T) {
	bank := NewQuestionBank(nil, symptom.BuiltinQuestions(), zerolog.Nop())
	qs, src := bank.Load(context.Background(), 0)
	assert.Equal(t, SourceLocal, src)
	assert.Len(t, qs, symptom.DefaultQuestionCount)
}

func TestQuestionBankShuffleKeepsSet(t *testing.T) {
	builtin := symptom.BuiltinQuestions()
	bank := NewQuestionBank(nil, builtin, zerolog.Nop()).WithShuffle()
	qs, _ := bank.Load(context.Background(), len(builtin))
	assert.ElementsMatch(t, builtin, qs)
	assert.Equal(t, symptom.BuiltinQuestions(), builtin)
}

func TestScorerRemote(t *testing.T) {
	remote := &stubScorer{results: []symptom.ScoreResult{
		{Condition: "B", Score: 0.2},
		{Condition: "A", Score: 0.5},
	}}
	s := NewScorer(remote, symptom.DefaultConditions(), zerolog.Nop())

	results, src := s.Score(context.Background(), []string{"x"})
	assert.Equal(t, SourceRemote, src)
	require.Len(t, results, 2)
	assert.Equal(t, "A", results[0].Condition)
	assert.Equal(t, []string{"x"}, remote.got)
}

func TestScorerEmptyRemoteResultIsValid(t *testing.T) {
	s := NewScorer(&stubScorer{results: []symptom.ScoreResult{}}, symptom.DefaultConditions(), zerolog.Nop())
	results, src := s.Score(context.Background(), []string{"sadness"})
	assert.Equal(t, SourceRemote, src)
	assert.Empty(t, results)
}

func TestScorerFallsBackLocally(t *testing.T) {
	conditions := []symptom.Condition{
		{Name: "Depression", Symptoms: []string{"sadness", "fatigue", "hopelessness", "loss of interest", "sleep disturbance"}},
	}
	s := NewScorer(&stubScorer{err: errors.New("malformed response")}, conditions, zerolog.Nop())

	results, src := s.Score(context.Background(), []string{"sadness", "fatigue"})
	assert.Equal(t, SourceLocal, src)
	require.Len(t, results, 1)
	assert.Equal(t, 0.4, results[0].Score)
	assert.Equal(t, []string{"sadness", "fatigue"}, results[0].MatchedSymptoms)
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := errors.New("timeout")
	err := error(&TransportError{Op: "score", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "score")

	var terr *TransportError
	assert.True(t, errors.As(err, &terr))
}
