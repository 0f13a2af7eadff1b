package loader

import (
	"encoding/json"

	"control/internal/lir"
)

var aopNames = map[string]lir.AOp{
	"Add": lir.Add,
	"Sub": lir.Sub,
	"Mul": lir.Mul,
	"Div": lir.Div,
}

var ropNames = map[string]lir.ROp{
	"Eq":  lir.Eq,
	"Neq": lir.Neq,
	"Lt":  lir.Lt,
	"Le":  lir.Le,
	"Gt":  lir.Gt,
	"Ge":  lir.Ge,
}

func decodeAOp(s string) (lir.AOp, error) {
	op, ok := aopNames[s]
	if !ok {
		return 0, parseErrf("unknown arithmetic operator %q", s)
	}
	return op, nil
}

func decodeROp(s string) (lir.ROp, error) {
	op, ok := ropNames[s]
	if !ok {
		return 0, parseErrf("unknown relational operator %q", s)
	}
	return op, nil
}

// singleKeyVariant splits a §6 "single-key object whose key is the
// variant name" instruction/terminator encoding.
func singleKeyVariant(raw json.RawMessage) (string, json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", nil, parseErrf("instruction/terminator must be a single-key object: %v", err)
	}
	if len(obj) != 1 {
		return "", nil, parseErrf("instruction/terminator object must have exactly one key, got %d", len(obj))
	}
	for key, val := range obj {
		return key, val, nil
	}
	panic("unreachable")
}

func decodeInstruction(raw json.RawMessage) (lir.Instruction, error) {
	variant, body, err := singleKeyVariant(raw)
	if err != nil {
		return nil, err
	}

	switch variant {
	case "AddrOf":
		var w struct {
			Lhs wireVariable `json:"lhs"`
			Rhs wireVariable `json:"rhs"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("AddrOf: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := buildVariable(w.Rhs)
		if err != nil {
			return nil, err
		}
		return &lir.AddrOfInst{Lhs: lhs, Rhs: rhs}, nil

	case "Alloc":
		var w struct {
			Lhs wireVariable    `json:"lhs"`
			Num json.RawMessage `json:"num"`
			ID  wireVariable    `json:"id"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Alloc: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		num, err := decodeOperand(w.Num)
		if err != nil {
			return nil, err
		}
		id, err := buildVariable(w.ID)
		if err != nil {
			return nil, err
		}
		return &lir.AllocInst{Lhs: lhs, Num: num, ID: id}, nil

	case "Copy":
		var w struct {
			Lhs wireVariable    `json:"lhs"`
			Op  json.RawMessage `json:"op"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Copy: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		op, err := decodeOperand(w.Op)
		if err != nil {
			return nil, err
		}
		return &lir.CopyInst{Lhs: lhs, Op: op}, nil

	case "Gep":
		var w struct {
			Lhs wireVariable    `json:"lhs"`
			Src wireVariable    `json:"src"`
			Idx json.RawMessage `json:"idx"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Gep: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		src, err := buildVariable(w.Src)
		if err != nil {
			return nil, err
		}
		idx, err := decodeOperand(w.Idx)
		if err != nil {
			return nil, err
		}
		return &lir.GepInst{Lhs: lhs, Src: src, Idx: idx}, nil

	case "Gfp":
		var w struct {
			Lhs   wireVariable `json:"lhs"`
			Src   wireVariable `json:"src"`
			Field string       `json:"field"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Gfp: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		src, err := buildVariable(w.Src)
		if err != nil {
			return nil, err
		}
		return &lir.GfpInst{Lhs: lhs, Src: src, Field: w.Field}, nil

	case "Arith":
		var w struct {
			Lhs wireVariable    `json:"lhs"`
			Aop string          `json:"aop"`
			Op1 json.RawMessage `json:"op1"`
			Op2 json.RawMessage `json:"op2"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Arith: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		aop, err := decodeAOp(w.Aop)
		if err != nil {
			return nil, err
		}
		op1, err := decodeOperand(w.Op1)
		if err != nil {
			return nil, err
		}
		op2, err := decodeOperand(w.Op2)
		if err != nil {
			return nil, err
		}
		return &lir.ArithInst{Lhs: lhs, Op: aop, Op1: op1, Op2: op2}, nil

	case "Cmp":
		var w struct {
			Lhs wireVariable    `json:"lhs"`
			Rop string          `json:"rop"`
			Op1 json.RawMessage `json:"op1"`
			Op2 json.RawMessage `json:"op2"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Cmp: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		rop, err := decodeROp(w.Rop)
		if err != nil {
			return nil, err
		}
		op1, err := decodeOperand(w.Op1)
		if err != nil {
			return nil, err
		}
		op2, err := decodeOperand(w.Op2)
		if err != nil {
			return nil, err
		}
		return &lir.CmpInst{Lhs: lhs, Op: rop, Op1: op1, Op2: op2}, nil

	case "Load":
		var w struct {
			Lhs wireVariable `json:"lhs"`
			Src wireVariable `json:"src"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Load: %v", err)
		}
		lhs, err := buildVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		src, err := buildVariable(w.Src)
		if err != nil {
			return nil, err
		}
		return &lir.LoadInst{Lhs: lhs, Src: src}, nil

	case "Store":
		var w struct {
			Dst wireVariable    `json:"dst"`
			Op  json.RawMessage `json:"op"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("Store: %v", err)
		}
		dst, err := buildVariable(w.Dst)
		if err != nil {
			return nil, err
		}
		op, err := decodeOperand(w.Op)
		if err != nil {
			return nil, err
		}
		return &lir.StoreInst{Dst: dst, Op: op}, nil

	case "CallExt":
		var w struct {
			Lhs    json.RawMessage   `json:"lhs"`
			Callee string            `json:"callee"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, parseErrf("CallExt: %v", err)
		}
		lhs, err := buildOptionalVariable(w.Lhs)
		if err != nil {
			return nil, err
		}
		args, err := decodeOperandList(w.Args)
		if err != nil {
			return nil, err
		}
		return &lir.CallExtInst{Lhs: lhs, Callee: w.Callee, Args: args}, nil

	default:
		return nil, parseErrf("unknown instruction variant %q", variant)
	}
}
