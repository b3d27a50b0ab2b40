package symptom

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClarifyingReply is the reply given when no condition keyword matches. It is
// also a clarifying question, so it triggers the self-check auto-start.
const ClarifyingReply = "Thanks for sharing. Could you tell me whether this affects sleep, appetite, mood, or daily activities?"

const disclaimer = "This is informational only. Please consult a healthcare professional for diagnosis and treatment."

// ConditionKeywords lists the free-text stems that point at one condition.
type ConditionKeywords struct {
	Name       string   `yaml:"name"`
	Keywords   []string `yaml:"keywords"`
	Suggestion string   `yaml:"suggestion"`
}

// KeywordSet is the configurable vocabulary used by the assistant: condition
// stems, yes/no cues for free-text answers and the phrases that mark a reply
// as a clarifying question. Unsure cues mark non-answers such as "don't know"
// and win over both yes and no.
type KeywordSet struct {
	Conditions     []ConditionKeywords `yaml:"conditions"`
	Affirmative    []string            `yaml:"affirmative"`
	Negative       []string            `yaml:"negative"`
	Unsure         []string            `yaml:"unsure"`
	ClarifyingCues []string            `yaml:"clarifying_cues"`
}

// DefaultKeywords returns the built-in vocabulary.
func DefaultKeywords() KeywordSet {
	return KeywordSet{
		Conditions: []ConditionKeywords{
			{
				Name:       "Depression",
				Keywords:   []string{"sad", "depress", "hopeless", "empty", "guilty", "worthless", "tired", "suicid"},
				Suggestion: "Depression: consider therapy, staying active, keeping social contact, and seeking professional advice.",
			},
			{
				Name:       "Anxiety",
				Keywords:   []string{"anxious", "worried", "panic", "nervous", "tense", "restless", "heart", "sweat"},
				Suggestion: "Anxiety: try breathing, grounding (5-4-3-2-1), regular sleep, and limiting caffeine.",
			},
			{
				Name:       "Bipolar Disorder",
				Keywords:   []string{"manic", "euphor", "racing", "impulsive", "mood swing"},
				Suggestion: "Bipolar: keep routine, sleep hygiene, avoid substances, seek psychiatric care when needed.",
			},
			{
				Name:       "PTSD",
				Keywords:   []string{"trauma", "flashback", "nightmare", "trigger", "startle"},
				Suggestion: "PTSD: consider trauma-focused therapy and supportive services.",
			},
			{
				Name:       "OCD",
				Keywords:   []string{"obsess", "compuls", "ritual", "check", "clean"},
				Suggestion: "OCD: exposure and response prevention therapy (ERP) and professional guidance.",
			},
			{
				Name:       "Schizophrenia",
				Keywords:   []string{"hallucinat", "delusion", "paranoid", "voices", "disorgan"},
				Suggestion: "Schizophrenia: professional assessment and medication/support networks.",
			},
		},
		Affirmative: []string{"yes", "yeah", "yep", "yup", "y", "sure", "have", "experienc*", "i do", "i am", "sometimes", "often", "affects"},
		Negative:    []string{"no", "nah", "nope", "n", "not", "dont", "don't", "do not", "never", "none", "doesn't", "doesnt", "haven't", "havent"},
		Unsure: []string{
			"don't know", "dont know", "do not know", "no idea", "not sure", "unsure",
			"dunno", "idk", "maybe", "not certain", "can't say", "cant say", "hard to say",
		},
		ClarifyingCues: []string{
			"could you tell me whether this affects",
			"does this affect your",
			"please tell me whether this affects",
			"affects sleep",
		},
	}
}

// LoadKeywords reads a YAML keyword file. Sections left empty in the file
// keep their built-in defaults.
func LoadKeywords(path string) (KeywordSet, error) {
	defaults := DefaultKeywords()
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("read keywords: %w", err)
	}
	var ks KeywordSet
	if err := yaml.Unmarshal(data, &ks); err != nil {
		return defaults, fmt.Errorf("decode keywords: %w", err)
	}
	if len(ks.Conditions) == 0 {
		ks.Conditions = defaults.Conditions
	}
	if len(ks.Affirmative) == 0 {
		ks.Affirmative = defaults.Affirmative
	}
	if len(ks.Negative) == 0 {
		ks.Negative = defaults.Negative
	}
	if len(ks.Unsure) == 0 {
		ks.Unsure = defaults.Unsure
	}
	if len(ks.ClarifyingCues) == 0 {
		ks.ClarifyingCues = defaults.ClarifyingCues
	}
	return ks, nil
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// Classifier maps free text to candidate condition labels by keyword stems.
type Classifier struct {
	conditions []ConditionKeywords
	cues       []string
}

// NewClassifier builds a classifier over the given vocabulary.
func NewClassifier(ks KeywordSet) *Classifier {
	cues := make([]string, 0, len(ks.ClarifyingCues))
	for _, c := range ks.ClarifyingCues {
		cues = append(cues, strings.ToLower(c))
	}
	return &Classifier{conditions: ks.Conditions, cues: cues}
}

// Classify returns the matching condition labels in vocabulary order.
func (c *Classifier) Classify(text string) []string {
	msg := strings.ToLower(text)
	var matches []string
	for _, cond := range c.conditions {
		for _, kw := range cond.Keywords {
			if strings.Contains(msg, strings.ToLower(kw)) {
				matches = append(matches, cond.Name)
				break
			}
		}
	}
	return matches
}

// Reply builds the keyword-based conversational fallback for a message.
func (c *Classifier) Reply(text string) string {
	matches := c.Classify(text)
	if len(matches) == 0 {
		return ClarifyingReply
	}

	var b strings.Builder
	b.WriteString("Based on your description, you might have symptoms related to: ")
	b.WriteString(strings.Join(matches, ", "))
	b.WriteString(".\n\nGeneral suggestions:\n")
	for _, cond := range c.conditions {
		if contains(matches, cond.Name) && cond.Suggestion != "" {
			b.WriteString("• ")
			b.WriteString(cond.Suggestion)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(disclaimer)
	return b.String()
}

// IsClarifyingQuestion reports whether a reply asks how symptoms affect
// sleep, appetite, mood or daily activities. HTML markup is ignored.
func (c *Classifier) IsClarifyingQuestion(reply string) bool {
	if reply == "" {
		return false
	}
	plain := strings.ToLower(htmlTag.ReplaceAllString(reply, ""))
	for _, cue := range c.cues {
		if strings.Contains(plain, cue) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
