package symbols

import "github.com/anycow/vuglang/internal/typesys"

// Context owns the Symbol arena for a single compilation. Every symbol
// created through its Add<Kind>Symbol factories lives as long as the
// Context; AST nodes and the symbol table only ever hold borrowed
// pointers into it.
type Context struct {
	arena []*Symbol
}

// NewContext returns an empty symbol context.
func NewContext() *Context {
	return &Context{}
}

func (c *Context) alloc(s *Symbol) *Symbol {
	c.arena = append(c.arena, s)
	return s
}

// AddModuleSymbol allocates and returns a new ModuleSymbol.
func (c *Context) AddModuleSymbol(name string) *Symbol {
	return c.alloc(&Symbol{Name: name, Kind: Module, Lifecycle: Complete})
}

// AddTypeSymbol allocates and returns a new TypeSymbol wrapping t.
func (c *Context) AddTypeSymbol(name string, t *typesys.Type) *Symbol {
	return c.alloc(&Symbol{Name: name, Kind: TypeSym, Lifecycle: Complete, Type: t})
}

// AddVariableSymbol allocates and returns a new LocalVariableSymbol.
func (c *Context) AddVariableSymbol(name string, declaredType *Symbol) *Symbol {
	return c.alloc(&Symbol{Name: name, Kind: Variable, Lifecycle: Complete, DeclaredType: declaredType})
}

// AddFunctionSymbol allocates and returns a new placeholder FunctionSymbol.
// Callers transition it through Incomplete to Complete as GlobalScopePass
// resolves its signature.
func (c *Context) AddFunctionSymbol(name string) *Symbol {
	return c.alloc(&Symbol{Name: name, Kind: Function, Lifecycle: Placeholder})
}

// NewBuiltinTable builds a SymbolTable pre-populated at depth 0 with every
// built-in TypeSymbol, inserted non-shadowable per the shadowing policy.
func (c *Context) NewBuiltinTable() *Table {
	t := NewTable()
	for _, bt := range typesys.Builtins {
		sym := c.AddTypeSymbol(bt.String(), bt)
		if res := t.Insert(bt.String(), sym, false); res.Kind != InsertSuccessful {
			panic("symbols: duplicate built-in type name " + bt.String())
		}
	}
	return t
}
