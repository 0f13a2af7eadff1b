package loader

import (
	"encoding/json"

	"control/internal/lir"
)

func decodeTerminator(raw json.RawMessage) (lir.Terminator, error) {
	variant, body, err := singleKeyVariant(raw)
	if err != nil {
		return nil, err
	}

	switch variant {
	case "Jump":
		var w struct {
			Target string `json:"target"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Jump: %v", err)
		}
		return &lir.JumpTerm{Target: w.Target}, nil

	case "Branch":
		var w struct {
			Cond json.RawMessage `json:"cond"`
			TT   string          `json:"tt"`
			FF   string          `json:"ff"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Branch: %v", err)
		}
		cond, err := decodeOperand(w.Cond)
		if err != nil {
			return nil, err
		}
		return &lir.BranchTerm{Cond: cond, TT: w.TT, FF: w.FF}, nil

	case "Ret":
		var w struct {
			Op json.RawMessage `json:"op"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Ret: %v", err)
		}
		op, err := decodeOptionalOperand(w.Op)
		if err != nil {
			return nil, err
		}
		return &lir.RetTerm{Op: op}, nil

	case "CallDirect":
		var w struct {
			Lhs    json.RawMessage   `json:"lhs"`
			Callee string            `json:"callee"`
			Args   []json.RawMessage `json:"args"`
			Next   string            `json:"next"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("CallDirect: %v", err)
		}
		lhs, err := buildOptionalVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		args, err := decodeOperandList(w.Args)
		if err != nil {
			return nil, err
		}
		return &lir.CallDirectTerm{Lhs: lhs, Callee: w.Callee, Args: args, Next: w.Next}, nil

	case "CallIndirect":
		var w struct {
			Lhs       json.RawMessage   `json:"lhs"`
			CalleeVar wireVariable      `json:"callee_var"`
			Args      []json.RawMessage `json:"args"`
			Next      string            `json:"next"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("CallIndirect: %v", err)
		}
		lhs, err := buildOptionalVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		calleeVar, err := buildVariable(w.CalleeVar)
		if err != nil {
			return nil, err
		}
		args, err := decodeOperandList(w.Args)
		if err != nil {
			return nil, err
		}
		return &lir.CallIndirectTerm{Lhs: lhs, CalleeVar: calleeVar, Args: args, Next: w.Next}, nil

	default:
		return nil, parseErrf("unknown terminator variant %q", variant)
	}
}
