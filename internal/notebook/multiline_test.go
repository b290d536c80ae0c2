package notebook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input MultilineString
		want  []string
	}{
		{"empty string", Single(""), nil},
		{"no newline", Single("a"), []string{"a"}},
		{"interior newline", Single("a\nb"), []string{"a\n", "b"}},
		{"blank line and trailing newline", Single("a\n\nb\n"), []string{"a\n", "\n", "b\n"}},
		{"already split", Multi([]string{"Hello,\n", "world!"}), []string{"Hello,\n", "world!"}},
		{"fragments rejoined across boundaries", Multi([]string{"a", "b\nc", "d"}), []string{"ab\n", "cd"}},
		{"empty array", Multi(nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Multi(tt.want), tt.input.Normalize())
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []MultilineString{
		Single(""),
		Single("a"),
		Single("a\nb"),
		Single("a\n\nb\n"),
		Multi([]string{"x", "y\n", "z"}),
	}
	for _, in := range inputs {
		once := in.Normalize()
		assert.Equal(t, once, once.Normalize())
	}
}

func TestMultilineShapeDispatch(t *testing.T) {
	var m MultilineString
	require.NoError(t, json.Unmarshal([]byte(`"hello"`), &m))
	assert.False(t, m.IsMulti())
	assert.Equal(t, "hello", m.String())

	require.NoError(t, json.Unmarshal([]byte(`["a\n", "b"]`), &m))
	assert.True(t, m.IsMulti())
	assert.Equal(t, "a\nb", m.String())

	err := json.Unmarshal([]byte(`42`), &m)
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestMultilineRoundTrip(t *testing.T) {
	for _, raw := range []string{`"one\ntwo"`, `["one\n","two"]`, `""`, `[]`} {
		var m MultilineString
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		out, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, raw, string(out), "form must be preserved for %s", raw)
	}
}
