package repository

import (
	"context"

	"github.com/mentallify/assistant/internal/db/queries"
)

type contactStore interface {
	InsertContactMessage(ctx context.Context, arg queries.InsertContactMessageParams) (queries.ContactMessage, error)
}

// ContactRepository persists contact form submissions.
type ContactRepository struct {
	store contactStore
}

func NewContactRepository(store contactStore) *ContactRepository {
	return &ContactRepository{store: store}
}

// Save stores one message and returns its row id.
func (r *ContactRepository) Save(ctx context.Context, name, email, message string) (int64, error) {
	row, err := r.store.InsertContactMessage(ctx, queries.InsertContactMessageParams{
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}
