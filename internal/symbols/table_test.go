package symbols_test

import (
	"testing"

	"github.com/anycow/vuglang/internal/symbols"
	"github.com/anycow/vuglang/internal/typesys"
)

func TestBuiltinTypesAreNonShadowable(t *testing.T) {
	ctx := symbols.NewContext()
	table := ctx.NewBuiltinTable()

	table.OpenScope()
	defer table.CloseScope()

	shadow := ctx.AddTypeSymbol("int32", typesys.Int32)
	res := table.Insert("int32", shadow, true)
	if res.Kind != symbols.InsertProhibitedShadowing {
		t.Fatalf("Insert over built-in = %v, want ProhibitedShadowing", res.Kind)
	}
}

func TestSameDepthRedefinitionIsConflict(t *testing.T) {
	ctx := symbols.NewContext()
	table := symbols.NewTable()

	a := ctx.AddVariableSymbol("x", nil)
	b := ctx.AddVariableSymbol("x", nil)

	if res := table.Insert("x", a, true); res.Kind != symbols.InsertSuccessful {
		t.Fatalf("first insert = %v, want Successful", res.Kind)
	}
	res := table.Insert("x", b, true)
	if res.Kind != symbols.InsertNameConflict {
		t.Fatalf("second insert at same depth = %v, want NameConflict", res.Kind)
	}
	if res.Other.Symbol != a {
		t.Fatalf("conflicting record points at wrong symbol")
	}
}

func TestShadowableOuterBindingCanBeShadowed(t *testing.T) {
	ctx := symbols.NewContext()
	table := symbols.NewTable()

	outer := ctx.AddVariableSymbol("x", nil)
	if res := table.Insert("x", outer, true); res.Kind != symbols.InsertSuccessful {
		t.Fatalf("outer insert = %v", res.Kind)
	}

	table.OpenScope()
	inner := ctx.AddVariableSymbol("x", nil)
	if res := table.Insert("x", inner, true); res.Kind != symbols.InsertSuccessful {
		t.Fatalf("inner shadow insert = %v, want Successful", res.Kind)
	}
	if found := table.Find("x"); found.Record.Symbol != inner {
		t.Fatalf("lookup inside inner scope resolved to wrong symbol")
	}
	table.CloseScope()

	if found := table.Find("x"); found.Record.Symbol != outer {
		t.Fatalf("lookup after close did not restore outer binding")
	}
}

func TestCloseScopeRemovesNamesWithNoPriorBinding(t *testing.T) {
	ctx := symbols.NewContext()
	table := symbols.NewTable()

	table.OpenScope()
	sym := ctx.AddVariableSymbol("y", nil)
	table.Insert("y", sym, true)
	table.CloseScope()

	if found := table.Find("y"); found.Kind != symbols.FindNotFound {
		t.Fatalf("expected y to be unbound after its defining scope closed")
	}
}

func TestFindNotFound(t *testing.T) {
	table := symbols.NewTable()
	if found := table.Find("nope"); found.Kind != symbols.FindNotFound {
		t.Fatalf("Find on empty table = %v, want NotFound", found.Kind)
	}
}
