package question

import (
	"github.com/mentallify/assistant/internal/symptom"
)

// QuestionsResponse is the GET /quiz_questions payload.
type QuestionsResponse struct {
	Questions []symptom.Question `json:"questions"`
}

// ScoreRequest is the POST /quiz_result body.
type ScoreRequest struct {
	Symptoms []string `json:"yes_symptoms"`
}

// ScoreResponse lists every condition ordered by descending score.
type ScoreResponse struct {
	Results []symptom.ScoreResult `json:"results"`
}
