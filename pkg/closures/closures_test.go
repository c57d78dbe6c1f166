package closures

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	days, err := Parse([]byte(`{"year":2024,"months":[{"month":7,"days":"5, 15*"},{"month":12,"days":"26+,"}]}`))
	require.NoError(t, err)

	require.Len(t, days, 3)
	assert.Equal(t, []time.Time{
		time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 26, 0, 0, 0, 0, time.UTC),
	}, Dates(days))
	assert.Equal(t, 12, days[2].Month)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"bad day", `{"year":2024,"months":[{"month":7,"days":"x"}]}`},
		{"bad month", `{"year":2024,"months":[{"month":13,"days":"1"}]}`},
		{"day overflow", `{"year":2024,"months":[{"month":2,"days":"30"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closures.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"year":2025,"months":[{"month":1,"days":"2"}]}`), 0o600))

	days, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Day)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
