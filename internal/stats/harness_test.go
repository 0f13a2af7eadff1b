package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"control/internal/loader"
)

// TestSmokeAgainstFixtures walks testdata/ and checks that Compute's
// output matches each sample's reference .stats fixture, per spec.md
// §4.H's stats-reporter smoke test.
func TestSmokeAgainstFixtures(t *testing.T) {
	pairs, err := Walk("testdata")
	require.NoError(t, err)
	require.NotEmpty(t, pairs, "expected at least one (.json, .stats) sample pair")

	for _, pair := range pairs {
		pair := pair
		t.Run(pair.Name, func(t *testing.T) {
			prog, err := loader.LoadFile(pair.JSONPath)
			require.NoError(t, err)

			got := Compute(prog)
			want, err := ParseFile(pair.StatsPath)
			require.NoError(t, err)

			assert.Equal(t, want, got)
		})
	}
}

func TestParseFileMatchesLabelsBySubstring(t *testing.T) {
	s, err := ParseFile("testdata/sample.stats")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Structs)
	assert.Equal(t, 2, s.Fields)
}

func TestWalkSkipsJSONWithoutStatsSibling(t *testing.T) {
	pairs, err := Walk("testdata")
	require.NoError(t, err)
	for _, p := range pairs {
		assert.Equal(t, "sample", p.Name)
	}
}
