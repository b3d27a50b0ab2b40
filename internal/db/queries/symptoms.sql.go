package queries

import (
	"context"
)

const listSymptomQuestions = `-- name: ListSymptomQuestions :many
SELECT position, text, symptom_key FROM symptom_questions
ORDER BY position
`

func (q *Queries) ListSymptomQuestions(ctx context.Context) ([]SymptomQuestion, error) {
	rows, err := q.db.Query(ctx, listSymptomQuestions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SymptomQuestion{}
	for rows.Next() {
		var i SymptomQuestion
		if err := rows.Scan(&i.Position, &i.Text, &i.SymptomKey); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listConditions = `-- name: ListConditions :many
SELECT position, name, symptoms, precautions FROM conditions
ORDER BY position
`

func (q *Queries) ListConditions(ctx context.Context) ([]Condition, error) {
	rows, err := q.db.Query(ctx, listConditions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Condition{}
	for rows.Next() {
		var i Condition
		if err := rows.Scan(&i.Position, &i.Name, &i.Symptoms, &i.Precautions); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertSymptomQuestion = `-- name: InsertSymptomQuestion :exec
INSERT INTO symptom_questions (position, text, symptom_key)
VALUES ($1, $2, $3)
`

type InsertSymptomQuestionParams struct {
	Position   int32  `json:"position"`
	Text       string `json:"text"`
	SymptomKey string `json:"symptom_key"`
}

func (q *Queries) InsertSymptomQuestion(ctx context.Context, arg InsertSymptomQuestionParams) error {
	_, err := q.db.Exec(ctx, insertSymptomQuestion, arg.Position, arg.Text, arg.SymptomKey)
	return err
}

const insertCondition = `-- name: InsertCondition :exec
INSERT INTO conditions (position, name, symptoms, precautions)
VALUES ($1, $2, $3, $4)
`

type InsertConditionParams struct {
	Position    int32    `json:"position"`
	Name        string   `json:"name"`
	Symptoms    []string `json:"symptoms"`
	Precautions string   `json:"precautions"`
}

func (q *Queries) InsertCondition(ctx context.Context, arg InsertConditionParams) error {
	_, err := q.db.Exec(ctx, insertCondition, arg.Position, arg.Name, arg.Symptoms, arg.Precautions)
	return err
}

const deleteSymptomBank = `-- name: DeleteSymptomBank :exec
TRUNCATE symptom_questions, conditions
`

func (q *Queries) DeleteSymptomBank(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteSymptomBank)
	return err
}
