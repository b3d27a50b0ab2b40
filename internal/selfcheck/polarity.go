package selfcheck

import (
	"strings"
	"unicode"
)

// Polarity of a free-text answer.
type Polarity int

const (
	Ambiguous Polarity = iota
	Affirmative
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "ambiguous"
	}
}

// PolarityClassifier maps free text to yes, no or neither. Cues match whole
// words or phrases; a cue ending in "*" matches any word with that prefix.
// Text that hits an unsure cue, both cue sets, or neither, is ambiguous.
type PolarityClassifier struct {
	affirmative []string
	negative    []string
	unsure      []string
}

func NewPolarityClassifier(affirmative, negative, unsure []string) *PolarityClassifier {
	return &PolarityClassifier{
		affirmative: normalizeCues(affirmative),
		negative:    normalizeCues(negative),
		unsure:      normalizeCues(unsure),
	}
}

func (p *PolarityClassifier) Classify(text string) Polarity {
	padded := " " + normalizeAnswer(text) + " "
	if strings.TrimSpace(padded) == "" || matchesAny(padded, p.unsure) {
		return Ambiguous
	}
	yes := matchesAny(padded, p.affirmative)
	no := matchesAny(padded, p.negative)
	switch {
	case yes && !no:
		return Affirmative
	case no && !yes:
		return Negative
	default:
		return Ambiguous
	}
}

func matchesAny(padded string, cues []string) bool {
	for _, cue := range cues {
		if stem, ok := strings.CutSuffix(cue, "*"); ok {
			if strings.Contains(padded, " "+stem) {
				return true
			}
			continue
		}
		if strings.Contains(padded, " "+cue+" ") {
			return true
		}
	}
	return false
}

func normalizeCues(cues []string) []string {
	out := make([]string, 0, len(cues))
	for _, c := range cues {
		star := strings.HasSuffix(c, "*")
		n := normalizeAnswer(strings.TrimSuffix(c, "*"))
		if n == "" {
			continue
		}
		if star {
			n += "*"
		}
		out = append(out, n)
	}
	return out
}

// normalizeAnswer lowercases text and collapses everything except letters,
// digits and apostrophes into single spaces.
func normalizeAnswer(text string) string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	return strings.Join(fields, " ")
}
