package chat

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mentallify/assistant/internal/metrics"
	"github.com/mentallify/assistant/internal/symptom"
)

// FallbackLabel marks replies produced by the keyword classifier.
const FallbackLabel = "fallback"

// completer is implemented by Completer.
type completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// predictor is implemented by LinearModel.
type predictor interface {
	Predict(text string) (string, []float64, bool)
}

// Reply is the POST /chat response body.
type Reply struct {
	Reply string    `json:"reply"`
	Label string    `json:"label"`
	Probs []float64 `json:"probs"`
}

// Service answers chat messages with the completion service, then the text
// model, then the keyword classifier.
type Service struct {
	completer  completer
	model      predictor
	classifier *symptom.Classifier
	logger     zerolog.Logger
}

// NewService builds a chat service; completer and model may be nil.
func NewService(c completer, model predictor, classifier *symptom.Classifier, logger zerolog.Logger) *Service {
	return &Service{
		completer:  c,
		model:      model,
		classifier: classifier,
		logger:     logger.With().Str("component", "chat_service").Logger(),
	}
}

func (s *Service) Reply(ctx context.Context, message string) Reply {
	if s.completer != nil {
		reply, err := s.completer.Complete(ctx, message)
		if err == nil {
			return Reply{Reply: reply, Label: "completion", Probs: []float64{}}
		}
		s.logger.Warn().Err(err).Msg("completion failed")
		metrics.Fallback(metrics.PathChat)
	}
	if s.model != nil {
		if label, probs, ok := s.model.Predict(message); ok {
			return Reply{
				Reply: fmt.Sprintf("I detect text patterns most associated with %s (informational only).", label),
				Label: label,
				Probs: probs,
			}
		}
	}
	return Reply{Reply: s.classifier.Reply(message), Label: FallbackLabel, Probs: []float64{}}
}
