// Package loader decodes the JSON program representation spec.md §6
// defines into internal/lir types. Grounded on internal/parser's
// ParseSource(path, src) (ast, error) signature and on the CLI's
// error-surfacing convention, but built on encoding/json with one decode
// function per union rather than a parser-combinator library: the wire
// format's single-key discriminated unions (Type, Operand, Instruction,
// Terminator) are exactly what encoding/json + json.RawMessage decode
// idiomatically, and no JSON library appears anywhere in the retrieval
// pack to suggest a different convention (see DESIGN.md).
package loader

import (
	"encoding/json"
	"fmt"

	"control/internal/analysiserr"
	"control/internal/lir"
)

type wireFunctionType struct {
	RetTy   json.RawMessage   `json:"ret_ty"`
	ParamTy []json.RawMessage `json:"param_ty"`
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// decodeType decodes a §6 type: the string "Int", or a single-key object
// selecting Struct/Pointer/Function.
func decodeType(raw json.RawMessage) (*lir.Type, error) {
	if isJSONNull(raw) {
		return nil, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "Int" {
			return lir.IntType(), nil
		}
		return nil, parseErrf("unknown primitive type %q", asString)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, parseErrf("type must be a string or single-key object: %v", err)
	}
	if len(obj) != 1 {
		return nil, parseErrf("type object must have exactly one key, got %d", len(obj))
	}

	for key, val := range obj {
		switch key {
		case "Struct":
			var name string
			if err := json.Unmarshal(val, &name); err != nil {
				return nil, parseErrf("Struct type: %v", err)
			}
			return &lir.Type{Kind: lir.TypeStruct, StructName: name}, nil

		case "Pointer":
			inner, err := decodeType(val)
			if err != nil {
				return nil, err
			}
			return lir.PointerTo(inner), nil

		case "Function":
			var wf wireFunctionType
			if err := json.Unmarshal(val, &wf); err != nil {
				return nil, parseErrf("Function type: %v", err)
			}
			ret, err := decodeType(wf.RetTy)
			if err != nil {
				return nil, err
			}
			params := make([]*lir.Type, 0, len(wf.ParamTy))
			for _, p := range wf.ParamTy {
				pt, err := decodeType(p)
				if err != nil {
					return nil, err
				}
				params = append(params, pt)
			}
			return &lir.Type{Kind: lir.TypeFunction, Ret: ret, Params: params}, nil

		default:
			return nil, parseErrf("unknown type variant %q", key)
		}
	}
	panic("unreachable")
}

func parseErrf(format string, args ...any) *analysiserr.Error {
	return analysiserr.Parse(fmt.Sprintf(format, args...), -1)
}
