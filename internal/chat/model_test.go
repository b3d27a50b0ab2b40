package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModel = `{
  "classes": ["Anxiety", "Depression", "Stress"],
  "vocab": {"sad": 0, "panic": 1, "work": 2, "feel sad": 3},
  "idf": [1.0, 1.0, 1.0, 1.0],
  "coefs": [[0, 5, 0, 0], [5, 0, 0, 3], [0, 0, 5, 0]],
  "intercept": [0, 0, 0]
}`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "web_model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLinearModelPredict(t *testing.T) {
	m, err := LoadModel(writeModel(t, sampleModel))
	require.NoError(t, err)

	label, probs, ok := m.Predict("I feel SAD")
	require.True(t, ok)
	assert.Equal(t, "Depression", label)
	require.Len(t, probs, 3)
	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, probs[1], probs[0])

	label, _, ok = m.Predict("panic at work, panic everywhere")
	require.True(t, ok)
	assert.Equal(t, "Anxiety", label)
}

func TestLinearModelUnknownText(t *testing.T) {
	m, err := LoadModel(writeModel(t, sampleModel))
	require.NoError(t, err)

	_, _, ok := m.Predict("hello there")
	assert.False(t, ok)
	_, _, ok = m.Predict("")
	assert.False(t, ok)
}

func TestLinearModelBinary(t *testing.T) {
	m, err := LoadModel(writeModel(t, `{"classes":["calm","distressed"],"vocab":{"awful":0},"idf":[2.0],"coefs":[[3.0]],"intercept":[-0.5]}`))
	require.NoError(t, err)

	label, probs, ok := m.Predict("awful awful day")
	require.True(t, ok)
	assert.Equal(t, "distressed", label)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-9)
}

func TestLinearModelStopWords(t *testing.T) {
	m, err := LoadModel(writeModel(t, `{"classes":["a","b"],"vocab":{"very sad":0},"idf":[1.0],"coefs":[[4.0]],"intercept":[0],"stop_words":["so"]}`))
	require.NoError(t, err)

	label, _, ok := m.Predict("very so sad")
	require.True(t, ok)
	assert.Equal(t, "b", label)
}

func TestLoadModelRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"not json":      `{`,
		"one class":     `{"classes":["a"],"vocab":{},"idf":[],"coefs":[[]],"intercept":[0]}`,
		"row mismatch":  `{"classes":["a","b","c"],"vocab":{},"idf":[1],"coefs":[[1]],"intercept":[0]}`,
		"width":         `{"classes":["a","b"],"vocab":{},"idf":[1,1],"coefs":[[1]],"intercept":[0]}`,
		"vocab overrun": `{"classes":["a","b"],"vocab":{"x":3},"idf":[1],"coefs":[[1]],"intercept":[0]}`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadModel(writeModel(t, content))
			assert.Error(t, err)
		})
	}

	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
