// Package lir defines the low-level three-address intermediate
// representation that the constant-propagation analysis operates on.
//
// The model is consumer-only: nothing in this package mutates a Program
// after it has been built by internal/loader. Instructions and terminators
// are plain data; their only method beyond marker methods is
// Terminator.Successors, because the analysis lives entirely in
// internal/constprop's transfer function.
package lir

import "fmt"

// TypeKind tags the variant of a Type.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeStruct
	TypeFunction
	TypePointer
)

// Type is exactly one of: Int, Struct(name), Function(ret, params), Pointer(inner).
type Type struct {
	Kind TypeKind

	// Struct
	StructName string

	// Pointer
	Elem *Type

	// Function
	Ret    *Type // nil means void
	Params []*Type
}

func IntType() *Type { return &Type{Kind: TypeInt} }

func PointerTo(elem *Type) *Type { return &Type{Kind: TypePointer, Elem: elem} }

// ReachesIntThroughPointer holds of T iff T is a chain of one or more
// pointers whose innermost pointee is Int.
func (t *Type) ReachesIntThroughPointer() bool {
	if t == nil || t.Kind != TypePointer {
		return false
	}
	if t.Elem == nil {
		return false
	}
	if t.Elem.Kind == TypeInt {
		return true
	}
	return t.Elem.ReachesIntThroughPointer()
}

func (t *Type) IsInt() bool { return t != nil && t.Kind == TypeInt }

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeInt:
		return "Int"
	case TypeStruct:
		return fmt.Sprintf("Struct(%s)", t.StructName)
	case TypeFunction:
		ret := "void"
		if t.Ret != nil {
			ret = t.Ret.String()
		}
		return fmt.Sprintf("Function(%s, %d params)", ret, len(t.Params))
	case TypePointer:
		return fmt.Sprintf("Pointer(%s)", t.Elem)
	default:
		return "<unknown type>"
	}
}

// Variable is identified by name; it compares and is keyed by that name
// alone within the flat namespace (params, locals, globals) an abstract
// store is built over.
type Variable struct {
	Name  string
	Type  *Type
	Scope string // informational only, e.g. "local"/"global"/"param"
}

// Operand is either a variable reference or a signed 32-bit literal.
type OperandKind int

const (
	OperandVar OperandKind = iota
	OperandConst
)

type Operand struct {
	Kind  OperandKind
	Var   *Variable
	Const int32
}

func VarOperand(v *Variable) Operand { return Operand{Kind: OperandVar, Var: v} }
func ConstOperand(c int32) Operand   { return Operand{Kind: OperandConst, Const: c} }

func (o Operand) String() string {
	if o.Kind == OperandConst {
		return fmt.Sprintf("%d", o.Const)
	}
	if o.Var == nil {
		return "<nil var>"
	}
	return o.Var.Name
}

// AOp enumerates arithmetic operators.
type AOp int

const (
	Add AOp = iota
	Sub
	Mul
	Div
)

// ROp enumerates relational operators.
type ROp int

const (
	Eq ROp = iota
	Neq
	Lt
	Le
	Gt
	Ge
)

// FieldDecl is one field of a struct definition.
type FieldDecl struct {
	Name string
	Type *Type
}
