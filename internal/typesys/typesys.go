// Package typesys implements the module's type algebra: an arena of
// pointer-identified built-in types and the binary/prefix compatibility
// tables that drive both semantic analysis and evaluation.
package typesys

import "fmt"

// Kind discriminates the tagged Type variant.
type Kind int

const (
	Undefined Kind = iota
	Integer
	Boolean
)

// Op identifies an operator understood by the type algebra.
type Op string

const (
	OpAdd    Op = "+"
	OpSub    Op = "-"
	OpMul    Op = "*"
	OpDiv    Op = "/"
	OpMod    Op = "%"
	OpAnd    Op = "&"
	OpOr     Op = "|"
	OpXor    Op = "^"
	OpEq     Op = "=="
	OpNotEq  Op = "!="
	OpLt     Op = "<"
	OpLte    Op = "<="
	OpGt     Op = ">"
	OpGte    Op = ">="
	OpLogAnd Op = "&&"
	OpLogOr  Op = "||"
	OpNeg    Op = "-" // prefix
	OpPos    Op = "+" // prefix
	OpNot    Op = "!" // prefix
)

// Type is a type in the arena. Equality between two *Type values is
// pointer identity: two references name the same type iff they point at
// the same arena slot. There are no implicit conversions.
type Type struct {
	Kind Kind

	// Integer fields; zero for non-Integer kinds.
	Width    int
	Unsigned bool

	name string
}

func (t *Type) String() string {
	if t == nil {
		return "<undefined>"
	}
	return t.name
}

// Binary reports whether op is defined for (t, other) and, if so, the
// result type. Per the algebra: comparisons between two identical integer
// types or two bools yield bool; arithmetic and bitwise ops between two
// identical integer types yield that integer type; bitwise ops between
// two bools yield bool; logical &&/|| apply only to two bools.
func (t *Type) Binary(op Op, other *Type) (*Type, bool) {
	if t == nil || other == nil || t != other {
		return nil, false
	}
	switch op {
	case OpEq, OpNotEq, OpLt, OpLte, OpGt, OpGte:
		if t.Kind == Integer || t.Kind == Boolean {
			return Bool, true
		}
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		if t.Kind == Integer {
			return t, true
		}
	case OpAnd, OpOr, OpXor:
		if t.Kind == Integer || t.Kind == Boolean {
			return t, true
		}
	case OpLogAnd, OpLogOr:
		if t.Kind == Boolean {
			return Bool, true
		}
	}
	return nil, false
}

// Prefix reports whether the prefix operator op is defined for t and, if
// so, the result type: unary `-`/`+` on any integer yields that integer,
// `!` on bool yields bool.
func (t *Type) Prefix(op Op) (*Type, bool) {
	if t == nil {
		return nil, false
	}
	switch op {
	case OpNeg, OpPos:
		if t.Kind == Integer {
			return t, true
		}
	case OpNot:
		if t.Kind == Boolean {
			return t, true
		}
	}
	return nil, false
}

// IsInteger reports whether t is one of the integer built-ins.
func (t *Type) IsInteger() bool { return t != nil && t.Kind == Integer }

// IsBoolean reports whether t is the bool built-in.
func (t *Type) IsBoolean() bool { return t != nil && t.Kind == Boolean }

// Built-in arena. These are allocated once at package init and are the
// only values of their respective identities for the process lifetime;
// the symbol table pre-populates TypeSymbols that borrow these pointers.
var (
	Int8   = &Type{Kind: Integer, Width: 8, Unsigned: false, name: "int8"}
	Int16  = &Type{Kind: Integer, Width: 16, Unsigned: false, name: "int16"}
	Int32  = &Type{Kind: Integer, Width: 32, Unsigned: false, name: "int32"}
	Int64  = &Type{Kind: Integer, Width: 64, Unsigned: false, name: "int64"}
	Uint8  = &Type{Kind: Integer, Width: 8, Unsigned: true, name: "uint8"}
	Uint16 = &Type{Kind: Integer, Width: 16, Unsigned: true, name: "uint16"}
	Uint32 = &Type{Kind: Integer, Width: 32, Unsigned: true, name: "uint32"}
	Uint64 = &Type{Kind: Integer, Width: 64, Unsigned: true, name: "uint64"}
	Bool   = &Type{Kind: Boolean, name: "bool"}
)

// Builtins lists every pre-populated built-in type in declaration order,
// the order the symbol context inserts them into the depth-0 scope.
var Builtins = []*Type{Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Bool}

// ForSuffix maps a number-literal width/sign suffix ("", "u8", "i16", ...)
// to its built-in type. An empty suffix is the language default, int32.
func ForSuffix(suffix string) (*Type, error) {
	switch suffix {
	case "":
		return Int32, nil
	case "i8":
		return Int8, nil
	case "i16":
		return Int16, nil
	case "i32":
		return Int32, nil
	case "i64":
		return Int64, nil
	case "u8":
		return Uint8, nil
	case "u16":
		return Uint16, nil
	case "u32":
		return Uint32, nil
	case "u64":
		return Uint64, nil
	default:
		return nil, fmt.Errorf("unrecognized number literal suffix %q", suffix)
	}
}
