package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"control/internal/constprop"
)

func TestFormatSortsBlocksAndVariables(t *testing.T) {
	bStore := constprop.NewStore()
	bStore.Set("z", constprop.IntConst(1))
	bStore.Set("a", constprop.TopValue())
	aStore := constprop.NewStore()
	aStore.Set("m", constprop.IntConst(9))

	result := &constprop.Result{Post: map[string]*constprop.Store{
		"block_b": bStore,
		"block_a": aStore,
	}}

	out := Format(result)
	idxA := strings.Index(out, "block_a:")
	idxB := strings.Index(out, "block_b:")
	assert.True(t, idxA >= 0 && idxB >= 0 && idxA < idxB, "blocks must be lexicographically ordered")
	assert.Contains(t, out, "a -> Top")
	assert.Contains(t, out, "z -> 1")
	assert.Contains(t, out, "m -> 9")
}

func TestFormatOmitsBottomBindings(t *testing.T) {
	s := constprop.NewStore()
	s.Set("x", constprop.IntConst(1))
	s.Set("x", constprop.BottomValue()) // explicit reset to Bottom

	result := &constprop.Result{Post: map[string]*constprop.Store{"entry": s}}
	out := Format(result)
	assert.NotContains(t, out, "x ->")
}
