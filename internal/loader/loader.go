package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"control/internal/analysiserr"
	"control/internal/lir"
)

type wireFieldDecl struct {
	Name string          `json:"name"`
	Typ  json.RawMessage `json:"typ"`
}

type wireBlock struct {
	ID    string            `json:"id"`
	Insts []json.RawMessage `json:"insts"`
	Term  json.RawMessage   `json:"term"`
}

type wireFunction struct {
	ID     string               `json:"id"`
	RetTy  json.RawMessage      `json:"ret_ty"`
	Params []wireVariable       `json:"params"`
	Locals []wireVariable       `json:"locals"`
	Body   map[string]wireBlock `json:"body"`
}

type wireProgram struct {
	Structs   map[string][]wireFieldDecl `json:"structs"`
	Globals   []wireVariable             `json:"globals"`
	Functions map[string]wireFunction    `json:"functions"`
	Externs   map[string]json.RawMessage `json:"externs"`
}

// LoadFile reads and parses a §6 JSON program file from disk.
func LoadFile(path string) (*lir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, analysiserr.IO(fmt.Sprintf("reading %s: %v", path, err))
	}
	return Load(data)
}

// Load parses a §6 JSON document into a Program.
func Load(data []byte) (*lir.Program, error) {
	var wp wireProgram
	if err := json.Unmarshal(data, &wp); err != nil {
		return nil, analysiserr.Parse(err.Error(), jsonErrorOffset(err))
	}

	prog := &lir.Program{
		Structs:   make(map[string][]lir.FieldDecl, len(wp.Structs)),
		Functions: make(map[string]*lir.Function, len(wp.Functions)),
		Externs:   make(map[string]*lir.Type, len(wp.Externs)),
	}

	for name, fields := range wp.Structs {
		decls := make([]lir.FieldDecl, 0, len(fields))
		for _, f := range fields {
			typ, err := decodeType(f.Typ)
			if err != nil {
				return nil, err
			}
			decls = append(decls, lir.FieldDecl{Name: f.Name, Type: typ})
		}
		prog.Structs[name] = decls
	}

	for _, g := range wp.Globals {
		v, err := buildVariable(g)
		if err != nil {
			return nil, err
		}
		prog.Globals = append(prog.Globals, v)
	}

	for name, raw := range wp.Externs {
		typ, err := decodeType(raw)
		if err != nil {
			return nil, err
		}
		prog.Externs[name] = typ
	}

	for name, wf := range wp.Functions {
		fn, err := buildFunction(wf)
		if err != nil {
			return nil, err
		}
		prog.Functions[name] = fn
	}

	return prog, nil
}

func buildFunction(wf wireFunction) (*lir.Function, error) {
	retTy, err := decodeType(wf.RetTy)
	if err != nil {
		return nil, err
	}

	fn := &lir.Function{
		ID:     wf.ID,
		RetTy:  retTy,
		Blocks: make(map[string]*lir.Block, len(wf.Body)),
	}

	for _, p := range wf.Params {
		v, err := buildVariable(p)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, v)
	}
	for _, l := range wf.Locals {
		v, err := buildVariable(l)
		if err != nil {
			return nil, err
		}
		fn.Locals = append(fn.Locals, v)
	}

	for id, wb := range wf.Body {
		block, err := buildBlock(wb)
		if err != nil {
			return nil, err
		}
		fn.Blocks[id] = block
	}

	return fn, nil
}

func buildBlock(wb wireBlock) (*lir.Block, error) {
	block := &lir.Block{ID: wb.ID}
	for _, raw := range wb.Insts {
		inst, err := decodeInstruction(raw)
		if err != nil {
			return nil, err
		}
		block.Instructions = append(block.Instructions, inst)
	}
	term, err := decodeTerminator(wb.Term)
	if err != nil {
		return nil, err
	}
	block.Term = term
	return block, nil
}

// jsonErrorOffset extracts the byte offset a std-library JSON error
// carries, when it carries one, so analysiserr.Parse can surface
// location information per spec.md §7.
func jsonErrorOffset(err error) int64 {
	switch e := err.(type) {
	case *json.SyntaxError:
		return e.Offset
	case *json.UnmarshalTypeError:
		return e.Offset
	default:
		return -1
	}
}
