package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// ErrMissingFields is returned when name, email or message is blank.
var ErrMissingFields = errors.New("please provide name, email and message")

// Message is one contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type messageStore interface {
	Save(ctx context.Context, name, email, message string) (int64, error)
}

type sender interface {
	Send(ctx context.Context, msg Message) error
}

// Service stores a copy of each message when a store is configured and
// forwards it by email.
type Service struct {
	store  messageStore
	mailer sender
	logger zerolog.Logger
}

// NewService builds a contact service; store may be nil.
func NewService(store messageStore, mailer sender, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
		logger: logger.With().Str("component", "contact_service").Logger(),
	}
}

// Submit validates and delivers msg. A failed backup is logged only; a failed
// email is returned.
func (s *Service) Submit(ctx context.Context, msg Message) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return ErrMissingFields
	}

	if s.store != nil {
		if id, err := s.store.Save(ctx, msg.Name, msg.Email, msg.Message); err != nil {
			s.logger.Warn().Err(err).Msg("contact backup failed")
		} else {
			s.logger.Debug().Int64("id", id).Msg("contact message stored")
		}
	}
	return s.mailer.Send(ctx, msg)
}
