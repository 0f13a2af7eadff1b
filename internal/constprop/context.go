package constprop

import (
	"sort"

	"control/internal/lir"
)

// Context is the analysis-wide, read-only information the pre-pass
// collects once per (program, function) pair: GlobalInts, AddrTakenInts,
// and GlobalPtrReachesInt. It is threaded explicitly through the transfer
// function rather than stashed in package-level mutable state, so the
// analysis has no hidden shared state across runs (see SPEC_FULL.md §9).
type Context struct {
	GlobalInts          []*lir.Variable
	AddrTakenInts       []*lir.Variable // deduplicated, sorted by name
	GlobalPtrReachesInt bool
}

// BuildContext scans a Program's globals once and the named function's
// body once to populate the analysis-wide sets.
func BuildContext(prog *lir.Program, fn *lir.Function) *Context {
	ctx := &Context{}

	for _, g := range prog.Globals {
		if g.Type.IsInt() {
			ctx.GlobalInts = append(ctx.GlobalInts, g)
		}
		if g.Type.ReachesIntThroughPointer() {
			ctx.GlobalPtrReachesInt = true
		}
	}

	seen := make(map[string]*lir.Variable)
	for _, b := range fn.Blocks {
		for _, inst := range b.Instructions {
			addrOf, ok := inst.(*lir.AddrOfInst)
			if !ok {
				continue
			}
			if addrOf.Rhs != nil && addrOf.Rhs.Type.IsInt() {
				seen[addrOf.Rhs.Name] = addrOf.Rhs
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctx.AddrTakenInts = append(ctx.AddrTakenInts, seen[name])
	}

	return ctx
}
