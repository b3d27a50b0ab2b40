package queries

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type SymptomQuestion struct {
	Position   int32  `json:"position"`
	Text       string `json:"text"`
	SymptomKey string `json:"symptom_key"`
}

type Condition struct {
	Position    int32    `json:"position"`
	Name        string   `json:"name"`
	Symptoms    []string `json:"symptoms"`
	Precautions string   `json:"precautions"`
}

type ContactMessage struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Message   string             `json:"message"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
