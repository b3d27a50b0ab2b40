package assistant

import (
	"context"

	"github.com/mentallify/assistant/internal/chat"
	"github.com/mentallify/assistant/internal/question"
	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
)

// Backend serves the self-check controller from the in-process question and
// chat services instead of going over HTTP.
type Backend struct {
	questions *question.Service
	chat      *chat.Service
}

var (
	_ selfcheck.QuestionSource = (*Backend)(nil)
	_ selfcheck.RemoteScorer   = (*Backend)(nil)
	_ selfcheck.ChatSource     = (*Backend)(nil)
)

func NewBackend(questions *question.Service, chat *chat.Service) *Backend {
	return &Backend{questions: questions, chat: chat}
}

func (b *Backend) FetchQuestions(ctx context.Context, n int) ([]symptom.Question, error) {
	return b.questions.Questions(ctx, n), nil
}

func (b *Backend) ScoreRemote(ctx context.Context, symptoms []string) ([]symptom.ScoreResult, error) {
	return b.questions.Score(ctx, symptoms), nil
}

func (b *Backend) Chat(ctx context.Context, message string) (string, error) {
	return b.chat.Reply(ctx, message).Reply, nil
}
