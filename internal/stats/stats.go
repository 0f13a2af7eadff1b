// Package stats computes flat structural counts over a Program, used by
// the smoke-test harness (harness.go) to cross-check the loader against
// reference ".stats" fixtures, per spec.md §4.H/§6.
package stats

import "control/internal/lir"

// Stats is a flat record of integer counts, summed across locals and
// globals where applicable, matching spec.md §4.H's field list.
type Stats struct {
	Fields                  int
	FunctionsReturningValue int
	Parameters              int
	Locals                  int
	Blocks                  int
	Instructions            int
	Terminators             int
	Ints                    int
	Structs                 int
	PointerToInt            int
	PointerToStruct         int
	PointerToFunction       int
	PointerToPointer        int
}

// Compute is a pure function Program -> Stats.
func Compute(prog *lir.Program) Stats {
	var s Stats

	for _, fields := range prog.Structs {
		s.Fields += len(fields)
	}

	for _, g := range prog.Globals {
		countType(&s, g.Type)
	}

	for _, fn := range prog.Functions {
		if fn.RetTy != nil {
			s.FunctionsReturningValue++
		}
		s.Parameters += len(fn.Params)
		s.Locals += len(fn.Locals)
		for _, l := range fn.Locals {
			countType(&s, l.Type)
		}
		s.Blocks += len(fn.Blocks)
		for _, b := range fn.Blocks {
			s.Instructions += len(b.Instructions)
			if b.Term != nil {
				s.Terminators++
			}
		}
	}

	return s
}

// countType tallies a single local/global's type into Ints/Structs/Pointer*.
func countType(s *Stats, t *lir.Type) {
	if t == nil {
		return
	}
	switch t.Kind {
	case lir.TypeInt:
		s.Ints++
	case lir.TypeStruct:
		s.Structs++
	case lir.TypePointer:
		switch {
		case t.Elem == nil:
		case t.Elem.Kind == lir.TypeInt:
			s.PointerToInt++
		case t.Elem.Kind == lir.TypeStruct:
			s.PointerToStruct++
		case t.Elem.Kind == lir.TypeFunction:
			s.PointerToFunction++
		case t.Elem.Kind == lir.TypePointer:
			s.PointerToPointer++
		}
	case lir.TypeFunction:
		// function-typed uses are not separately tallied by spec.md §4.H.
	}
}
