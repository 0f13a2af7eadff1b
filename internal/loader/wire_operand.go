package loader

import (
	"encoding/json"

	"control/internal/lir"
)

type wireVariable struct {
	Name  string          `json:"name"`
	Typ   json.RawMessage `json:"typ"`
	Scope string          `json:"scope,omitempty"`
}

func decodeVariableRaw(raw json.RawMessage) (*wireVariable, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var wv wireVariable
	if err := json.Unmarshal(raw, &wv); err != nil {
		return nil, parseErrf("variable: %v", err)
	}
	return &wv, nil
}

func buildVariable(wv wireVariable) (*lir.Variable, error) {
	typ, err := decodeType(wv.Typ)
	if err != nil {
		return nil, err
	}
	return &lir.Variable{Name: wv.Name, Type: typ, Scope: wv.Scope}, nil
}

func buildOptionalVariable(raw json.RawMessage) (*lir.Variable, error) {
	wv, err := decodeVariableRaw(raw)
	if err != nil {
		return nil, err
	}
	if wv == nil {
		return nil, nil
	}
	return buildVariable(*wv)
}

func decodeOperand(raw json.RawMessage) (lir.Operand, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return lir.Operand{}, parseErrf("operand must be a single-key object: %v", err)
	}
	if len(obj) != 1 {
		return lir.Operand{}, parseErrf("operand object must have exactly one key, got %d", len(obj))
	}
	for key, val := range obj {
		switch key {
		case "Var":
			wv, err := decodeVariableRaw(val)
			if err != nil {
				return lir.Operand{}, err
			}
			if wv == nil {
				return lir.Operand{}, parseErrf("Var operand cannot be null")
			}
			variable, err := buildVariable(*wv)
			if err != nil {
				return lir.Operand{}, err
			}
			return lir.VarOperand(variable), nil
		case "CInt":
			var n int32
			if err := json.Unmarshal(val, &n); err != nil {
				return lir.Operand{}, parseErrf("CInt operand: %v", err)
			}
			return lir.ConstOperand(n), nil
		default:
			return lir.Operand{}, parseErrf("unknown operand variant %q", key)
		}
	}
	panic("unreachable")
}

func decodeOptionalOperand(raw json.RawMessage) (*lir.Operand, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	op, err := decodeOperand(raw)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func decodeOperandList(raws []json.RawMessage) ([]lir.Operand, error) {
	ops := make([]lir.Operand, 0, len(raws))
	for _, raw := range raws {
		op, err := decodeOperand(raw)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
