package symptom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Bank is the question set plus the condition table used for scoring.
type Bank struct {
	Questions  []Question
	Conditions []Condition
}

// BuiltinQuestions returns the canonical self-check used whenever no remote
// or stored bank is available.
func BuiltinQuestions() []Question {
	return []Question{
		{Text: "Have you been feeling sad or down recently?", SymptomKey: "feeling sad"},
		{Text: "Have you lost interest in activities you usually enjoy?", SymptomKey: "loss of interest"},
		{Text: "Have you been feeling unusually worried or anxious?", SymptomKey: "excessive worry"},
		{Text: "Are you having trouble sleeping or sleeping much more?", SymptomKey: "sleep disturbance"},
		{Text: "Have you experienced panic attacks?", SymptomKey: "panic attacks"},
		{Text: "Have you noticed changes in appetite or weight?", SymptomKey: "appetite change"},
		{Text: "Have you had difficulty concentrating?", SymptomKey: "concentration problems"},
		{Text: "Do you feel restless or slowed down?", SymptomKey: "psychomotor change"},
		{Text: "Have you experienced intrusive thoughts or images?", SymptomKey: "intrusive thoughts"},
		{Text: "Have you had unusual sensory experiences (hearing/seeing things)?", SymptomKey: "hallucination like"},
		{Text: "Have you been avoiding reminders of a distressing event?", SymptomKey: "avoidance"},
		{Text: "Have you been having repetitive behaviors you can't control?", SymptomKey: "compulsions"},
	}
}

// DefaultConditions is the canonical condition table. Its order is the
// tie-break order for scoring.
func DefaultConditions() []Condition {
	return []Condition{
		{Name: "Depression", Symptoms: []string{"feeling sad", "loss of interest", "sleep disturbance", "appetite change", "concentration problems"}},
		{Name: "Anxiety", Symptoms: []string{"excessive worry", "panic attacks", "restless", "sleep disturbance"}},
		{Name: "PTSD", Symptoms: []string{"intrusive thoughts", "avoidance", "nightmare", "flashback"}},
		{Name: "OCD", Symptoms: []string{"compulsions", "intrusive thoughts", "repeat"}},
		{Name: "Schizophrenia", Symptoms: []string{"hallucination like", "withdrawn", "disorganized"}},
	}
}

// DefaultBank combines the built-in questions and condition table.
func DefaultBank() Bank {
	return Bank{Questions: BuiltinQuestions(), Conditions: DefaultConditions()}
}

// Truncate returns the first n questions (a copy). n <= 0 yields nothing.
func Truncate(questions []Question, n int) []Question {
	if n <= 0 {
		return nil
	}
	if n > len(questions) {
		n = len(questions)
	}
	out := make([]Question, n)
	copy(out, questions[:n])
	return out
}

type bankFile struct {
	Diseases  orderedConditions `json:"diseases"`
	Questions []Question        `json:"questions"`
}

// LoadBank reads a symptom_bank.json file:
//
//	{"diseases": {"Depression": {"symptoms": [...], "precautions": "..."}}, "questions": [...]}
//
// Disease declaration order is preserved.
func LoadBank(path string) (Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("read symptom bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank decodes symptom bank JSON.
func ParseBank(data []byte) (Bank, error) {
	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Bank{}, fmt.Errorf("decode symptom bank: %w", err)
	}
	return Bank{Questions: f.Questions, Conditions: []Condition(f.Diseases)}, nil
}

type orderedConditions []Condition

func (oc *orderedConditions) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*oc = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("diseases: expected object")
	}

	var out []Condition
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("diseases: expected key")
		}
		var meta struct {
			Symptoms    []string `json:"symptoms"`
			Precautions string   `json:"precautions"`
		}
		if err := dec.Decode(&meta); err != nil {
			return fmt.Errorf("diseases[%s]: %w", name, err)
		}
		out = append(out, Condition{Name: name, Symptoms: meta.Symptoms, Precautions: meta.Precautions})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*oc = out
	return nil
}
