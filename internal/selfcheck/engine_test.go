package selfcheck

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentallify/assistant/internal/symptom"
)

func threeQuestions() []symptom.Question {
	return []symptom.Question{
		{Text: "Q1?", SymptomKey: "a"},
		{Text: "Q2?", SymptomKey: "b"},
		{Text: "Q3?", SymptomKey: "c"},
	}
}

func TestEngineYesNoYes(t *testing.T) {
	e := NewEngine()
	_, err := e.Start(threeQuestions())
	require.NoError(t, err)

	require.NoError(t, e.Answer(true))
	require.NoError(t, e.Answer(false))
	require.NoError(t, e.Answer(true))

	assert.True(t, e.IsComplete())
	snap := e.Snapshot()
	assert.Equal(t, 3, snap.Index)
	assert.Equal(t, []string{"a", "c"}, snap.Symptoms)

	symptoms, err := e.Finish()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, symptoms)
	assert.Equal(t, StateCompleted, e.Snapshot().State)
}

func TestEngineIndexTracksAnswers(t *testing.T) {
	qs := symptom.BuiltinQuestions()
	e := NewEngine()
	_, err := e.Start(qs)
	require.NoError(t, err)

	for k := 1; k <= len(qs); k++ {
		require.NoError(t, e.Answer(k%2 == 0))
		assert.Equal(t, k, e.Snapshot().Index)
	}
	assert.ErrorIs(t, e.Answer(true), ErrNotActive)
	assert.Equal(t, len(qs), e.Snapshot().Index)
}

func TestEngineSymptomsAreSubsetOfYesAnswers(t *testing.T) {
	qs := symptom.BuiltinQuestions()
	rng := rand.New(rand.NewPCG(1, 2))

	for trial := 0; trial < 50; trial++ {
		e := NewEngine()
		_, err := e.Start(qs)
		require.NoError(t, err)

		var yesKeys []string
		n := rng.IntN(len(qs) + 1)
		for i := 0; i < n; i++ {
			yes := rng.IntN(2) == 1
			if yes {
				yesKeys = append(yesKeys, qs[i].SymptomKey)
			}
			require.NoError(t, e.Answer(yes))
		}
		symptoms, err := e.Finish()
		require.NoError(t, err)
		if len(yesKeys) == 0 {
			assert.Empty(t, symptoms)
			continue
		}
		assert.Equal(t, yesKeys, symptoms)
	}
}

func TestEngineAllYesRoundTrip(t *testing.T) {
	qs := symptom.BuiltinQuestions()
	e := NewEngine()
	_, err := e.Start(qs)
	require.NoError(t, err)
	for range qs {
		require.NoError(t, e.Answer(true))
	}
	symptoms, err := e.Finish()
	require.NoError(t, err)
	require.Len(t, symptoms, len(qs))
	for i, q := range qs {
		assert.Equal(t, q.SymptomKey, symptoms[i])
	}
}

func TestEngineRestartLeavesNoResidue(t *testing.T) {
	e := NewEngine()
	first, err := e.Start(threeQuestions())
	require.NoError(t, err)
	require.NoError(t, e.Answer(true))
	require.NoError(t, e.Answer(true))

	second, err := e.Start(threeQuestions())
	require.NoError(t, err)
	assert.Greater(t, second, first)

	snap := e.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Zero(t, snap.Index)
	assert.Empty(t, snap.Symptoms)
}

func TestEngineDuplicateKeysCollectedOnce(t *testing.T) {
	e := NewEngine()
	_, err := e.Start([]symptom.Question{{Text: "1", SymptomKey: "x"}, {Text: "2", SymptomKey: "x"}, {Text: "3"}})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Answer(true))
	}
	assert.Equal(t, []string{"x"}, e.Snapshot().Symptoms)
}

func TestEngineRejectsEmptyBank(t *testing.T) {
	e := NewEngine()
	_, err := e.Start(nil)
	assert.ErrorIs(t, err, ErrEmptyQuestionBank)
	assert.False(t, e.Active())
}

func TestEngineInactiveOperations(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Answer(true), ErrNotActive)
	_, err := e.Finish()
	assert.ErrorIs(t, err, ErrNotActive)
	assert.False(t, e.Abort())
	assert.Zero(t, e.SessionID())

	_, err = e.Start(threeQuestions())
	require.NoError(t, err)
	assert.True(t, e.Abort())
	assert.Equal(t, StateIdle, e.Snapshot().State)
	assert.ErrorIs(t, e.Answer(true), ErrNotActive)
}

func TestEngineEarlyFinish(t *testing.T) {
	e := NewEngine()
	_, err := e.Start(threeQuestions())
	require.NoError(t, err)
	require.NoError(t, e.Answer(true))

	symptoms, err := e.Finish()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, symptoms)
	assert.False(t, e.IsComplete())
	assert.False(t, e.Active())
}
