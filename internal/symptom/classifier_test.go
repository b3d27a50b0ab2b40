package symptom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"depression", "I feel so hopeless and Sad lately", []string{"Depression"}},
		{"anxiety and ptsd", "I get panic after the trauma", []string{"Anxiety", "PTSD"}},
		{"schizophrenia", "I keep hearing voices", []string{"Schizophrenia"}},
		{"no match", "the weather is fine", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestReplyListsSuggestions(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	reply := c.Reply("I am anxious and sad")
	assert.Contains(t, reply, "Depression, Anxiety")
	assert.Contains(t, reply, "• Depression:")
	assert.Contains(t, reply, "• Anxiety:")
	assert.NotContains(t, reply, "• PTSD:")
	assert.Contains(t, reply, "informational only")
	assert.False(t, c.IsClarifyingQuestion(reply))
}

func TestReplyWithoutMatchAsksClarifyingQuestion(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	reply := c.Reply("hello there")
	assert.Equal(t, ClarifyingReply, reply)
	assert.True(t, c.IsClarifyingQuestion(reply))
}

func TestIsClarifyingQuestion(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	assert.True(t, c.IsClarifyingQuestion("<p>Does this affect your <b>appetite</b>?</p>"))
	assert.True(t, c.IsClarifyingQuestion("Please tell me whether this AFFECTS your mood"))
	assert.False(t, c.IsClarifyingQuestion("I detect text patterns most associated with Anxiety (informational only)."))
	assert.False(t, c.IsClarifyingQuestion(""))
}

func TestLoadKeywordsOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := `
conditions:
  - name: Burnout
    keywords: [exhausted, drained]
    suggestion: "Burnout: rest."
clarifying_cues:
  - "how is your sleep"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	ks, err := LoadKeywords(path)
	require.NoError(t, err)
	require.Len(t, ks.Conditions, 1)
	assert.Equal(t, "Burnout", ks.Conditions[0].Name)
	assert.Equal(t, DefaultKeywords().Affirmative, ks.Affirmative)
	assert.Equal(t, DefaultKeywords().Unsure, ks.Unsure)

	c := NewClassifier(ks)
	assert.Equal(t, []string{"Burnout"}, c.Classify("I feel drained"))
	assert.True(t, c.IsClarifyingQuestion("So, how is your sleep?"))
}

func TestLoadKeywordsErrorsReturnDefaults(t *testing.T) {
	ks, err := LoadKeywords(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
	assert.Equal(t, DefaultKeywords(), ks)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conditions: [unterminated"), 0o600))
	_, err = LoadKeywords(path)
	assert.Error(t, err)
}

func TestShippedKeywordFileMatchesDefaults(t *testing.T) {
	ks, err := LoadKeywords(filepath.Join("..", "..", "configs", "keywords.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultKeywords().Negative, ks.Negative)
	assert.Equal(t, DefaultKeywords().Unsure, ks.Unsure)
}
