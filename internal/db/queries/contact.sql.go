package queries

import (
	"context"
)

const insertContactMessage = `-- name: InsertContactMessage :one
INSERT INTO contact_messages (name, email, message)
VALUES ($1, $2, $3)
RETURNING id, name, email, message, created_at
`

type InsertContactMessageParams struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (q *Queries) InsertContactMessage(ctx context.Context, arg InsertContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRow(ctx, insertContactMessage, arg.Name, arg.Email, arg.Message)
	var i ContactMessage
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Message, &i.CreatedAt)
	return i, err
}
