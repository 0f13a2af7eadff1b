package analysiserr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageWithOffset(t *testing.T) {
	err := Parse("unexpected token", 42)
	assert.Contains(t, err.Error(), "C0003")
	assert.Contains(t, err.Error(), "byte 42")
}

func TestErrorMessageWithoutOffset(t *testing.T) {
	err := Usage("wrong number of arguments")
	assert.NotContains(t, err.Error(), "byte")
}

func TestExitCodes(t *testing.T) {
	for _, e := range []*Error{Usage("x"), IO("x"), Parse("x", -1), Invariant("x")} {
		assert.Equal(t, 1, e.ExitCode())
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindUsage, Usage("x").Kind)
	assert.Equal(t, KindIO, IO("x").Kind)
	assert.Equal(t, KindParse, Parse("x", 0).Kind)
	assert.Equal(t, KindInvariant, Invariant("x").Kind)
}
