package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentallify/assistant/internal/db/queries"
	"github.com/mentallify/assistant/internal/symptom"
)

// ErrEmptyBank is returned when the tables hold no questions.
var ErrEmptyBank = errors.New("symptom bank tables are empty")

type symptomStore interface {
	ListSymptomQuestions(ctx context.Context) ([]queries.SymptomQuestion, error)
	ListConditions(ctx context.Context) ([]queries.Condition, error)
	InsertSymptomQuestion(ctx context.Context, arg queries.InsertSymptomQuestionParams) error
	InsertCondition(ctx context.Context, arg queries.InsertConditionParams) error
	DeleteSymptomBank(ctx context.Context) error
}

// SymptomBankRepository reads and replaces the stored symptom bank.
type SymptomBankRepository struct {
	store symptomStore
}

func NewSymptomBankRepository(store symptomStore) *SymptomBankRepository {
	return &SymptomBankRepository{store: store}
}

// Load returns the bank in stored position order.
func (r *SymptomBankRepository) Load(ctx context.Context) (symptom.Bank, error) {
	qs, err := r.store.ListSymptomQuestions(ctx)
	if err != nil {
		return symptom.Bank{}, fmt.Errorf("list questions: %w", err)
	}
	if len(qs) == 0 {
		return symptom.Bank{}, ErrEmptyBank
	}
	conds, err := r.store.ListConditions(ctx)
	if err != nil {
		return symptom.Bank{}, fmt.Errorf("list conditions: %w", err)
	}

	bank := symptom.Bank{
		Questions:  make([]symptom.Question, 0, len(qs)),
		Conditions: make([]symptom.Condition, 0, len(conds)),
	}
	for _, q := range qs {
		bank.Questions = append(bank.Questions, symptom.Question{Text: q.Text, SymptomKey: q.SymptomKey})
	}
	for _, c := range conds {
		bank.Conditions = append(bank.Conditions, symptom.Condition{
			Name:        c.Name,
			Symptoms:    c.Symptoms,
			Precautions: c.Precautions,
		})
	}
	return bank, nil
}

// Replace clears the tables and writes bank. Callers wrap it in a transaction.
func (r *SymptomBankRepository) Replace(ctx context.Context, bank symptom.Bank) error {
	if err := r.store.DeleteSymptomBank(ctx); err != nil {
		return fmt.Errorf("clear bank: %w", err)
	}
	for i, q := range bank.Questions {
		if err := r.store.InsertSymptomQuestion(ctx, queries.InsertSymptomQuestionParams{
			Position:   int32(i),
			Text:       q.Text,
			SymptomKey: q.SymptomKey,
		}); err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}
	for i, c := range bank.Conditions {
		symptoms := c.Symptoms
		if symptoms == nil {
			symptoms = []string{}
		}
		if err := r.store.InsertCondition(ctx, queries.InsertConditionParams{
			Position:    int32(i),
			Name:        c.Name,
			Symptoms:    symptoms,
			Precautions: c.Precautions,
		}); err != nil {
			return fmt.Errorf("insert condition %q: %w", c.Name, err)
		}
	}
	return nil
}
