package sema

import (
	"ldc/internal/ast"
	"ldc/internal/symbols"
	"ldc/internal/types"
)

// Checker walks a parsed module, populates scopes and validates types. It is
// synchronous, depth-first and fail-fast: the first error aborts the whole
// run. All state is passed in explicitly; two checkers never share scopes.
type Checker struct {
	arenas *ast.Builder
	types  *types.Interner
	table  *symbols.Table
}

// NewChecker builds a checker over the given arenas. A nil table gets a
// fresh one sharing the builder's string interner.
func NewChecker(arenas *ast.Builder, tin *types.Interner, table *symbols.Table) *Checker {
	if table == nil {
		table = symbols.NewTable(symbols.Hints{}, arenas.StringsInterner)
	}
	return &Checker{
		arenas: arenas,
		types:  tin,
		table:  table,
	}
}

// Table exposes the symbol table of this run, including the registry
// populated as an observable side effect of checking.
func (c *Checker) Table() *symbols.Table {
	return c.table
}

// CheckFile checks one file's module against a fresh root scope.
func (c *Checker) CheckFile(file ast.FileID) error {
	root := c.table.NewChild(symbols.NoScopeID)
	return c.checkModule(root, c.arenas.Files.Get(file).Items, false)
}

// checkModule runs the two-pass module check over the items whose static
// modifier equals static. Declaring everything before checking anything is
// what makes forward references and mutual recursion between siblings work.
func (c *Checker) checkModule(scope symbols.ScopeID, items []ast.ItemID, static bool) error {
	for _, id := range items {
		item := c.arenas.Items.Get(id)
		if item.Static != static {
			continue
		}
		switch item.Kind {
		case ast.ItemFn:
			c.table.Insert(scope, item.Name, c.table.AddItem(symbols.NewFunction(id)))
		case ast.ItemStruct:
			sym := symbols.NewStruct(id)
			symID := c.table.AddItem(sym)
			c.table.Insert(scope, item.Name, symID)
			c.table.Registry().Register(sym.UUID, symID)
		case ast.ItemEnum:
			sym := symbols.NewEnum(id)
			symID := c.table.AddItem(sym)
			c.table.Insert(scope, item.Name, symID)
			c.table.Registry().Register(sym.UUID, symID)
		default:
			panic("sema: cannot declare " + item.Kind.String() + " items")
		}
	}

	for _, id := range items {
		item := c.arenas.Items.Get(id)
		if item.Static != static {
			continue
		}
		switch item.Kind {
		case ast.ItemFn:
			if err := c.checkFunction(scope, id); err != nil {
				return err
			}
		case ast.ItemStruct:
			if err := c.checkStruct(scope, id); err != nil {
				return err
			}
		default:
			panic("sema: cannot check " + item.Kind.String() + " items")
		}
	}
	return nil
}

// checkFunction binds the parameters in a fresh child scope and infers the
// body. A declared result type must be satisfied by the body's type; the
// inferred type is otherwise discarded.
func (c *Checker) checkFunction(parent symbols.ScopeID, id ast.ItemID) error {
	fn := c.arenas.Items.Fn(id)
	scope := c.table.NewChild(parent)
	for _, param := range fn.Params {
		c.table.Insert(scope, param.Name, c.table.AddItem(symbols.NewVariable(param.Type)))
	}

	body, err := c.checkExpr(scope, fn.Body)
	if err != nil {
		return err
	}

	if fn.Result != types.NoTypeID && !c.types.Satisfies(body, fn.Result) {
		return &InvalidTypeError{
			Expected: fn.Result,
			Found:    body,
			Span:     c.arenas.Exprs.Get(fn.Body).Span,
			Types:    c.types,
		}
	}
	return nil
}

// checkStruct chains two scopes: statics first, then instance members in a
// child of the static scope. Instance members can therefore resolve statics,
// but statics never see instance members.
func (c *Checker) checkStruct(parent symbols.ScopeID, id ast.ItemID) error {
	st := c.arenas.Items.Struct(id)

	staticScope := c.table.NewChild(parent)
	if err := c.checkModule(staticScope, st.Items, true); err != nil {
		return err
	}

	instanceScope := c.table.NewChild(staticScope)
	return c.checkModule(instanceScope, st.Items, false)
}
