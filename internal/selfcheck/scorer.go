package selfcheck

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/metrics"
	"github.com/mentallify/assistant/internal/symptom"
)

// RemoteScorer scores a symptom set on a backend.
type RemoteScorer interface {
	ScoreRemote(ctx context.Context, symptoms []string) ([]symptom.ScoreResult, error)
}

// Scorer prefers remote scoring and recomputes locally when it fails.
type Scorer struct {
	remote     RemoteScorer
	conditions []symptom.Condition
	logger     zerolog.Logger
}

// NewScorer builds a scorer. remote may be nil for local-only scoring.
func NewScorer(remote RemoteScorer, conditions []symptom.Condition, logger zerolog.Logger) *Scorer {
	return &Scorer{
		remote:     remote,
		conditions: conditions,
		logger:     logger.With().Str("component", "scorer").Logger(),
	}
}

// Score returns every result ordered by descending score. An empty remote
// result list is a valid answer and is not replaced; a score outside [0, 1]
// makes the whole remote answer malformed.
func (s *Scorer) Score(ctx context.Context, symptoms []string) ([]symptom.ScoreResult, Source) {
	if s.remote != nil {
		results, err := s.remote.ScoreRemote(ctx, symptoms)
		if err == nil {
			err = checkScores(results)
		}
		if err == nil {
			sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
			return results, SourceRemote
		}
		s.logger.Warn().Err(&TransportError{Op: "score", Err: err}).Msg("scoring locally")
		metrics.Fallback(metrics.PathScoring)
	}
	return s.ScoreLocal(symptoms), SourceLocal
}

func (s *Scorer) ScoreLocal(symptoms []string) []symptom.ScoreResult {
	return symptom.Score(s.conditions, symptoms)
}

func checkScores(results []symptom.ScoreResult) error {
	for _, r := range results {
		if math.IsNaN(r.Score) || r.Score < 0 || r.Score > 1 {
			return fmt.Errorf("score %v for %q outside [0, 1]", r.Score, r.Condition)
		}
	}
	return nil
}
