package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mentallify/assistant/internal/symptom"
)

func TestPolarityClassify(t *testing.T) {
	ks := symptom.DefaultKeywords()
	p := NewPolarityClassifier(ks.Affirmative, ks.Negative, ks.Unsure)

	tests := []struct {
		text string
		want Polarity
	}{
		{"yes", Affirmative},
		{"Yes!", Affirmative},
		{"yeah, often", Affirmative},
		{"I have experienced that", Affirmative},
		{"y", Affirmative},
		{"no", Negative},
		{"Nope.", Negative},
		{"I don't", Negative},
		{"I don’t think so", Negative},
		{"never", Negative},
		{"I haven't", Negative},
		{"maybe", Ambiguous},
		{"", Ambiguous},
		{"   ", Ambiguous},
		{"yes and no", Ambiguous},
		{"not sure", Ambiguous},
		{"nothing", Ambiguous},
		{"yesterday", Ambiguous},
		{"I don't know", Ambiguous},
		{"dont know", Ambiguous},
		{"I do not know", Ambiguous},
		{"no idea", Ambiguous},
		{"No idea, sorry", Ambiguous},
		{"dunno", Ambiguous},
		{"idk", Ambiguous},
		{"I'm unsure", Ambiguous},
		{"yes, I think, but not certain", Ambiguous},
		{"hard to say", Ambiguous},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Classify(tt.text))
		})
	}
}

func TestPolarityPrefixCue(t *testing.T) {
	p := NewPolarityClassifier([]string{"agree*"}, []string{"Disagree"}, nil)

	assert.Equal(t, Affirmative, p.Classify("I agreed"))
	assert.Equal(t, Negative, p.Classify("DISAGREE"))
	assert.Equal(t, Ambiguous, p.Classify("I disagreed"))
}

func TestPolarityUnsureCueWins(t *testing.T) {
	p := NewPolarityClassifier([]string{"yes"}, []string{"no"}, []string{"no idea"})

	assert.Equal(t, Negative, p.Classify("no"))
	assert.Equal(t, Ambiguous, p.Classify("no idea"))
	assert.Equal(t, Ambiguous, p.Classify("yes? no idea"))
}
