package chat

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode"
)

// LinearModel is an exported TF-IDF plus one-vs-rest logistic regression
// classifier. Features are unigrams and bigrams with sublinear term
// frequency and L2 normalisation.
type LinearModel struct {
	Classes   []string       `json:"classes"`
	Vocab     map[string]int `json:"vocab"`
	IDF       []float64      `json:"idf"`
	Coefs     [][]float64    `json:"coefs"`
	Intercept []float64      `json:"intercept"`
	StopWords []string       `json:"stop_words,omitempty"`

	stop map[string]struct{}
}

// LoadModel reads web_model.json.
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.stop = make(map[string]struct{}, len(m.StopWords))
	for _, w := range m.StopWords {
		m.stop[w] = struct{}{}
	}
	return &m, nil
}

func (m *LinearModel) validate() error {
	if len(m.Classes) < 2 {
		return fmt.Errorf("model: need at least two classes, got %d", len(m.Classes))
	}
	rows := len(m.Classes)
	if rows == 2 {
		rows = 1
	}
	if len(m.Coefs) != rows || len(m.Intercept) != rows {
		return fmt.Errorf("model: expected %d coefficient rows, got %d/%d", rows, len(m.Coefs), len(m.Intercept))
	}
	for i, row := range m.Coefs {
		if len(row) != len(m.IDF) {
			return fmt.Errorf("model: coefficient row %d has %d features, idf has %d", i, len(row), len(m.IDF))
		}
	}
	for term, idx := range m.Vocab {
		if idx < 0 || idx >= len(m.IDF) {
			return fmt.Errorf("model: vocab entry %q out of range", term)
		}
	}
	return nil
}

// Predict returns the most likely class and the per-class probabilities.
// ok is false when the text shares no feature with the vocabulary.
func (m *LinearModel) Predict(text string) (label string, probs []float64, ok bool) {
	features := m.vectorize(text)
	if len(features) == 0 {
		return "", nil, false
	}

	decision := make([]float64, len(m.Coefs))
	for i, row := range m.Coefs {
		d := m.Intercept[i]
		for idx, v := range features {
			d += row[idx] * v
		}
		decision[i] = d
	}

	if len(m.Classes) == 2 {
		p := sigmoid(decision[0])
		probs = []float64{1 - p, p}
	} else {
		probs = make([]float64, len(decision))
		var sum float64
		for i, d := range decision {
			probs[i] = sigmoid(d)
			sum += probs[i]
		}
		for i := range probs {
			probs[i] /= sum
		}
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return m.Classes[best], probs, true
}

func (m *LinearModel) vectorize(text string) map[int]float64 {
	tokens := m.tokenize(text)
	counts := map[int]float64{}
	for i, tok := range tokens {
		if idx, ok := m.Vocab[tok]; ok {
			counts[idx]++
		}
		if i > 0 {
			if idx, ok := m.Vocab[tokens[i-1]+" "+tok]; ok {
				counts[idx]++
			}
		}
	}
	var norm float64
	for idx, tf := range counts {
		v := (1 + math.Log(tf)) * m.IDF[idx]
		counts[idx] = v
		norm += v * v
	}
	if norm == 0 {
		return counts
	}
	norm = math.Sqrt(norm)
	for idx := range counts {
		counts[idx] /= norm
	}
	return counts
}

// tokenize lowercases text and keeps words of two or more characters.
func (m *LinearModel) tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, skip := m.stop[w]; skip {
			continue
		}
		out = append(out, w)
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
