package lir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachesIntThroughPointer(t *testing.T) {
	assert.True(t, PointerTo(IntType()).ReachesIntThroughPointer())
	assert.True(t, PointerTo(PointerTo(IntType())).ReachesIntThroughPointer())
	assert.False(t, IntType().ReachesIntThroughPointer())
	assert.False(t, (&Type{Kind: TypeStruct, StructName: "S"}).ReachesIntThroughPointer())
	assert.False(t, PointerTo(&Type{Kind: TypeStruct, StructName: "S"}).ReachesIntThroughPointer())
}

func TestFunctionEntry(t *testing.T) {
	entry := &Block{ID: EntryBlockID, Term: &RetTerm{}}
	fn := &Function{ID: "f", Blocks: map[string]*Block{EntryBlockID: entry}}
	assert.Same(t, entry, fn.Entry())

	empty := &Function{Blocks: map[string]*Block{}}
	assert.Nil(t, empty.Entry())
}

func TestTerminatorSuccessors(t *testing.T) {
	assert.Equal(t, []string{"b"}, (&JumpTerm{Target: "b"}).Successors())
	assert.Equal(t, []string{"tt", "ff"}, (&BranchTerm{TT: "tt", FF: "ff"}).Successors())
	assert.Nil(t, (&RetTerm{}).Successors())
	assert.Equal(t, []string{"next"}, (&CallDirectTerm{Next: "next"}).Successors())
}
