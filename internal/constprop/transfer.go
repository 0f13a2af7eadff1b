package constprop

import "control/internal/lir"

// resolve looks up an operand's abstract value in sigma: a literal resolves
// to itself, a variable resolves to its current binding (Bottom if unbound).
func resolve(op lir.Operand, sigma *Store) Value {
	if op.Kind == lir.OperandConst {
		return IntConst(op.Const)
	}
	if op.Var == nil {
		return BottomValue()
	}
	return sigma.Get(op.Var.Name)
}

// TransferInst applies one instruction's effect on sigma in place.
func TransferInst(ctx *Context, inst lir.Instruction, sigma *Store) {
	switch i := inst.(type) {
	case *lir.CopyInst:
		if !i.Lhs.Type.IsInt() {
			return
		}
		sigma.Set(i.Lhs.Name, resolve(i.Op, sigma))

	case *lir.ArithInst:
		if !i.Lhs.Type.IsInt() {
			return
		}
		if operandNonInt(i.Op1) || operandNonInt(i.Op2) {
			sigma.Set(i.Lhs.Name, TopValue())
			return
		}
		sigma.Set(i.Lhs.Name, Arith(resolve(i.Op1, sigma), resolve(i.Op2, sigma), i.Op))

	case *lir.CmpInst:
		if !i.Lhs.Type.IsInt() {
			return
		}
		if operandNonInt(i.Op1) || operandNonInt(i.Op2) {
			sigma.Set(i.Lhs.Name, TopValue())
			return
		}
		sigma.Set(i.Lhs.Name, Cmp(resolve(i.Op1, sigma), resolve(i.Op2, sigma), i.Op))

	case *lir.LoadInst:
		if !i.Lhs.Type.IsInt() {
			return
		}
		// No points-to analysis: any Int load is opaque.
		sigma.Set(i.Lhs.Name, TopValue())

	case *lir.StoreInst:
		transferStore(ctx, i, sigma)

	case *lir.CallExtInst:
		var lhs *lir.Variable
		if i.Lhs != nil {
			lhs = i.Lhs
		}
		applyCallClobber(ctx, lhs, i.Args, sigma)

	case *lir.AddrOfInst, *lir.AllocInst, *lir.GepInst, *lir.GfpInst:
		// No effect on the Int store.
	}
}

// operandNonInt reports whether an operand is a variable of a non-Int
// type; constant literals are always Int-typed by construction.
func operandNonInt(op lir.Operand) bool {
	return op.Kind == lir.OperandVar && op.Var != nil && !op.Var.Type.IsInt()
}

// transferStore implements the Store(dst, op) rule: dst's pointee is
// typed Int iff dst itself is Pointer(Int); on that condition, every
// address-taken Int variable whose *name* equals dst's name is joined
// with the stored value. This name-equality criterion (rather than a
// proper points-to relation) is an intentional, preserved simplification
// — see SPEC_FULL.md / spec.md §9.
func transferStore(ctx *Context, i *lir.StoreInst, sigma *Store) {
	if i.Dst == nil || i.Dst.Type == nil || i.Dst.Type.Kind != lir.TypePointer {
		return
	}
	if !i.Dst.Type.Elem.IsInt() {
		return
	}
	stored := resolve(i.Op, sigma)
	for _, v := range ctx.AddrTakenInts {
		if v.Name == i.Dst.Name {
			sigma.Set(v.Name, Join(sigma.Get(v.Name), stored))
		}
	}
}

// applyCallClobber implements the conservative call clobber shared by
// CallExt and the Call* terminators:
//  1. every GlobalInts becomes Top
//  2. an Int-typed lhs becomes Top
//  3/4. if any arg's type reaches Int through a pointer chain, or any
//     global does, every AddrTakenInts becomes Top
func applyCallClobber(ctx *Context, lhs *lir.Variable, args []lir.Operand, sigma *Store) {
	for _, g := range ctx.GlobalInts {
		sigma.Set(g.Name, TopValue())
	}
	if lhs != nil && lhs.Type.IsInt() {
		sigma.Set(lhs.Name, TopValue())
	}

	anyArgReachesInt := false
	for _, arg := range args {
		if arg.Kind == lir.OperandVar && arg.Var != nil && arg.Var.Type.ReachesIntThroughPointer() {
			anyArgReachesInt = true
			break
		}
	}

	if anyArgReachesInt || ctx.GlobalPtrReachesInt {
		for _, v := range ctx.AddrTakenInts {
			sigma.Set(v.Name, TopValue())
		}
	}
}

// TransferTerm computes sigma_post (possibly further updating sigma for
// Call* terminators) and the ordered successor block id set, following
// the table in spec.md §4.E.
func TransferTerm(ctx *Context, term lir.Terminator, sigma *Store) (sigmaPost *Store, successors []string) {
	switch t := term.(type) {
	case *lir.JumpTerm:
		return sigma, []string{t.Target}

	case *lir.BranchTerm:
		cond := resolve(t.Cond, sigma)
		switch {
		case cond.IsBottom():
			return sigma, nil
		case cond.IsTop():
			return sigma, []string{t.TT, t.FF}
		case cond.N == 0:
			return sigma, []string{t.FF}
		default:
			return sigma, []string{t.TT}
		}

	case *lir.RetTerm:
		return sigma, nil

	case *lir.CallDirectTerm:
		applyCallClobber(ctx, t.Lhs, t.Args, sigma)
		return sigma, []string{t.Next}

	case *lir.CallIndirectTerm:
		applyCallClobber(ctx, t.Lhs, t.Args, sigma)
		return sigma, []string{t.Next}

	default:
		return sigma, nil
	}
}
