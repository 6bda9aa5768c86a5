// Package symbols implements the symbol model: the tagged Symbol variants,
// the arena that owns them, and the scoped symbol table with its
// shadowing policy.
package symbols

import "github.com/anycow/vuglang/internal/typesys"

// Kind discriminates the tagged Symbol variant.
type Kind int

const (
	Module Kind = iota
	TypeSym
	Variable
	Function
)

func (k Kind) String() string {
	switch k {
	case Module:
		return "module"
	case TypeSym:
		return "type"
	case Variable:
		return "variable"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Lifecycle tracks a symbol's resolution state across the semantic passes.
type Lifecycle int

const (
	Placeholder Lifecycle = iota
	Incomplete
	Complete
)

// Symbol is a tagged record for a name bound somewhere in the program.
// Only the fields matching Kind are meaningful; the rest are zero.
type Symbol struct {
	Name      string
	Kind      Kind
	Lifecycle Lifecycle

	// ModuleSymbol
	Members map[string][]*Symbol

	// TypeSymbol
	Type *typesys.Type

	// LocalVariableSymbol
	DeclaredType *Symbol // a TypeSymbol

	// FunctionSymbol
	Parameters []*Symbol // LocalVariableSymbols, in declaration order
	ReturnType *Symbol   // a TypeSymbol
	// Body holds the *ast.StatementsBlock for this function once
	// GlobalScopePass resolves it. Declared as interface{} because the ast
	// package imports symbols (for the back-reference pointers AST nodes
	// carry), so symbols cannot import ast without a cycle.
	Body interface{}
}

// AddMember registers sym as a member of a ModuleSymbol under name,
// appending to the multimap slot (module members form a multimap since
// overloads are not disallowed at this layer; semantic passes enforce
// uniqueness via the symbol table).
func (s *Symbol) AddMember(name string, sym *Symbol) {
	if s.Members == nil {
		s.Members = make(map[string][]*Symbol)
	}
	s.Members[name] = append(s.Members[name], sym)
}
