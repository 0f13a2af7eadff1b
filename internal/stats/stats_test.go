package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"control/internal/lir"
)

func TestComputeCountsFieldsWithoutLeakingIntoLocalsGlobalsStats(t *testing.T) {
	prog := &lir.Program{
		Structs: map[string][]lir.FieldDecl{
			"Point": {{Name: "x", Type: lir.IntType()}, {Name: "y", Type: lir.IntType()}},
		},
	}
	s := Compute(prog)
	assert.Equal(t, 2, s.Fields)
	assert.Equal(t, 0, s.Ints, "field types are not locals or globals")
	assert.Equal(t, 0, s.Structs, "field types are not locals or globals")
}

func TestComputeCountsStructTypedLocalsAndGlobals(t *testing.T) {
	structTy := &lir.Type{Kind: lir.TypeStruct, StructName: "Point"}
	fn := &lir.Function{
		Locals: []*lir.Variable{{Name: "p", Type: structTy}},
		Blocks: map[string]*lir.Block{},
	}
	prog := &lir.Program{
		Globals:   []*lir.Variable{{Name: "g", Type: structTy}},
		Functions: map[string]*lir.Function{"f": fn},
	}
	s := Compute(prog)
	assert.Equal(t, 2, s.Structs)
}

func TestComputeCountsFunctionsParamsLocalsBlocks(t *testing.T) {
	fn := &lir.Function{
		RetTy:  lir.IntType(),
		Params: []*lir.Variable{{Name: "a", Type: lir.IntType()}},
		Locals: []*lir.Variable{{Name: "b", Type: lir.IntType()}},
		Blocks: map[string]*lir.Block{
			"entry": {ID: "entry", Instructions: []lir.Instruction{&lir.CopyInst{}}, Term: &lir.RetTerm{}},
		},
	}
	prog := &lir.Program{Functions: map[string]*lir.Function{"f": fn}}

	s := Compute(prog)
	assert.Equal(t, 1, s.FunctionsReturningValue)
	assert.Equal(t, 1, s.Parameters)
	assert.Equal(t, 1, s.Locals)
	assert.Equal(t, 1, s.Blocks)
	assert.Equal(t, 1, s.Instructions)
	assert.Equal(t, 1, s.Terminators)
}

func TestComputeCountsPointerKinds(t *testing.T) {
	prog := &lir.Program{
		Globals: []*lir.Variable{
			{Name: "pi", Type: lir.PointerTo(lir.IntType())},
			{Name: "ps", Type: lir.PointerTo(&lir.Type{Kind: lir.TypeStruct, StructName: "S"})},
			{Name: "pp", Type: lir.PointerTo(lir.PointerTo(lir.IntType()))},
		},
	}
	s := Compute(prog)
	assert.Equal(t, 1, s.PointerToInt)
	assert.Equal(t, 1, s.PointerToStruct)
	assert.Equal(t, 1, s.PointerToPointer)
}

func TestFunctionVoidNotCountedAsReturningValue(t *testing.T) {
	prog := &lir.Program{Functions: map[string]*lir.Function{"f": {Blocks: map[string]*lir.Block{}}}}
	s := Compute(prog)
	assert.Equal(t, 0, s.FunctionsReturningValue)
}
