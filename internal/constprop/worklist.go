package constprop

import (
	"fmt"

	"control/internal/analysiserr"
	"control/internal/lir"
)

// Result is the converged post-store of every block in the analyzed
// function, keyed by block id. It is what internal/report formats.
type Result struct {
	Post map[string]*Store
}

// Analyze runs chaotic iteration over fn's CFG to a fixed point, grounded
// on the teacher's OptimizationPipeline.Run fixed-point loop generalized
// from "rerun all passes until nothing changes" to "rerun blocks from a
// FIFO worklist until no store changes".
func Analyze(prog *lir.Program, fn *lir.Function) *Result {
	ctx := BuildContext(prog, fn)

	pre := make(map[string]*Store)
	post := make(map[string]*Store)

	entry := NewStore()
	for _, g := range ctx.GlobalInts {
		entry.Set(g.Name, TopValue())
	}
	for _, p := range fn.Params {
		if p.Type.IsInt() {
			entry.Set(p.Name, TopValue())
		}
	}
	pre[lir.EntryBlockID] = entry

	var worklist []string
	queued := make(map[string]bool)
	enqueue := func(id string) {
		if !queued[id] {
			queued[id] = true
			worklist = append(worklist, id)
		}
	}
	enqueue(lir.EntryBlockID)

	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		queued[id] = false

		block, ok := fn.Blocks[id]
		if !ok {
			// Analysis invariant violation: a queued block id that does
			// not exist in the function body. The analysis is undefined
			// on malformed IR (spec.md §7); callers validate with
			// ValidateFunction before calling Analyze.
			panic("constprop: worklist references unknown block " + id)
		}

		sigma := storeOrEmpty(pre[id]).Clone()
		for _, inst := range block.Instructions {
			TransferInst(ctx, inst, sigma)
		}
		sigmaPost, successors := TransferTerm(ctx, block.Term, sigma)
		post[id] = sigmaPost

		for _, s := range successors {
			succPre, ok := pre[s]
			if !ok {
				succPre = NewStore()
				pre[s] = succPre
			}
			if succPre.JoinFrom(sigmaPost) {
				enqueue(s)
			}
		}
	}

	return &Result{Post: post}
}

func storeOrEmpty(s *Store) *Store {
	if s == nil {
		return NewStore()
	}
	return s
}

// ValidateFunction checks the analysis invariants spec.md §7 requires to
// hold before Analyze may run: an entry block exists, and every
// terminator's successors name an existing block.
func ValidateFunction(fn *lir.Function) error {
	if fn.Entry() == nil {
		return analysiserr.Invariant(fmt.Sprintf("function %q has no entry block", fn.ID))
	}
	for id, b := range fn.Blocks {
		if b.Term == nil {
			return analysiserr.Invariant(fmt.Sprintf("block %q has no terminator", id))
		}
		for _, s := range b.Term.Successors() {
			if _, ok := fn.Blocks[s]; !ok {
				return analysiserr.Invariant(fmt.Sprintf("block %q's terminator references unknown successor %q", id, s))
			}
		}
	}
	return nil
}
