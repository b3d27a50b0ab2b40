package symptom

// DefaultQuestionCount is the self-check length used when a caller does not ask for one.
const DefaultQuestionCount = 12

// TopResults is the number of ranked conditions surfaced to the user.
const TopResults = 3

// Question is a single yes/no self-check prompt.
type Question struct {
	Text       string `json:"text"`
	SymptomKey string `json:"symptom_key"`
}

// Condition maps a condition label to the symptom keys that define it.
type Condition struct {
	Name        string   `json:"name"`
	Symptoms    []string `json:"symptoms"`
	Precautions string   `json:"precautions"`
}

// ScoreResult is one ranked condition. The JSON shape is shared by the
// server scoring endpoint and the client-side fallback.
type ScoreResult struct {
	Condition       string   `json:"disease"`
	Score           float64  `json:"score"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	Precautions     string   `json:"precautions"`
}
