package sema

import (
	"math"

	"ldc/internal/ast"
	"ldc/internal/symbols"
	"ldc/internal/types"
)

// checkExpr infers the type of one expression within scope. Only closures
// open a new scope; everything else reads the one it was given.
func (c *Checker) checkExpr(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	expr := c.arenas.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprBlock:
		return c.checkBlock(scope, id)
	case ast.ExprCall:
		return c.checkCall(scope, id)
	case ast.ExprIdent:
		return c.checkIdent(scope, id)
	case ast.ExprIf:
		return c.checkIf(scope, id)
	case ast.ExprWhile:
		return c.checkWhile(scope, id)
	case ast.ExprReturn:
		ret := c.arenas.Return(id)
		if ret.Value == ast.NoExprID {
			return c.types.Builtins().Unit, nil
		}
		// deliberately not cross-checked against the enclosing declared
		// result; only the function body's trailing value is
		return c.checkExpr(scope, ret.Value)
	case ast.ExprLitChar:
		return c.types.Builtins().Char, nil
	case ast.ExprLitBool:
		return c.types.Builtins().Bool, nil
	case ast.ExprLitInt:
		return c.integerLiteralType(c.arenas.IntLit(id).Value), nil
	case ast.ExprLitFloat:
		return c.types.Builtins().F64, nil
	case ast.ExprLitTuple:
		return c.checkTupleLit(scope, id)
	case ast.ExprClosure:
		return c.checkClosure(scope, id)
	default:
		panic("sema: cannot check " + expr.Kind.String() + " expressions")
	}
}

// checkBlock infers every sub-expression in order; the block's type is the
// trailing expression's type when the block has a value, unit otherwise.
func (c *Checker) checkBlock(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	block := c.arenas.Block(id)
	last := c.types.Builtins().Unit
	for _, sub := range block.Exprs {
		ty, err := c.checkExpr(scope, sub)
		if err != nil {
			return types.NoTypeID, err
		}
		last = ty
	}
	if block.HasValue {
		return last, nil
	}
	return c.types.Builtins().Unit, nil
}

func (c *Checker) checkCall(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	call := c.arenas.Call(id)
	callee, err := c.checkExpr(scope, call.Callee)
	if err != nil {
		return types.NoTypeID, err
	}

	fn, ok := c.types.FnInfo(callee)
	if !ok {
		panic("sema: cannot call a value of type " + c.types.Format(callee))
	}

	if len(fn.Params) != len(call.Args) {
		return types.NoTypeID, c.invalidArguments(scope, id, fn.Params, call.Args)
	}
	for i, arg := range call.Args {
		ty, err := c.checkExpr(scope, arg)
		if err != nil {
			return types.NoTypeID, err
		}
		if !c.types.Satisfies(ty, fn.Params[i]) {
			return types.NoTypeID, c.invalidArguments(scope, id, fn.Params, call.Args)
		}
	}
	return fn.Result, nil
}

// invalidArguments infers every argument type for the diagnostic payload,
// not only the failing one. Inference errors inside an argument win over the
// argument mismatch itself.
func (c *Checker) invalidArguments(scope symbols.ScopeID, call ast.ExprID, params []types.TypeID, args []ast.ExprID) error {
	found := make([]types.TypeID, len(args))
	for i, arg := range args {
		ty, err := c.checkExpr(scope, arg)
		if err != nil {
			return err
		}
		found[i] = ty
	}
	return &InvalidArgumentsError{
		Expected: append([]types.TypeID(nil), params...),
		Found:    found,
		Span:     c.arenas.Exprs.Get(call).Span,
		Types:    c.types,
	}
}

func (c *Checker) checkIdent(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	ident := c.arenas.Ident(id)
	symID, ok := c.table.Lookup(scope, ident.Name)
	if ok {
		sym := c.table.Item(symID)
		switch sym.Kind {
		case symbols.ItemVariable:
			return sym.Type, nil
		case symbols.ItemFunction:
			fn := c.arenas.Items.Fn(sym.Decl)
			result := fn.Result
			if result == types.NoTypeID {
				result = c.types.Builtins().Unit
			}
			return c.types.Fn(ast.ParamTypes(fn.Params), result), nil
		}
	}
	return types.NoTypeID, &UnresolvedIdentifierError{
		Name: c.arenas.StringsInterner.MustLookup(ident.Name),
		Span: c.arenas.Exprs.Get(id).Span,
	}
}

func (c *Checker) checkIf(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	ifx := c.arenas.If(id)
	if err := c.requireBool(scope, ifx.Cond); err != nil {
		return types.NoTypeID, err
	}

	cons, err := c.checkExpr(scope, ifx.Cons)
	if err != nil {
		return types.NoTypeID, err
	}
	if ifx.Alt == ast.NoExprID {
		return cons, nil
	}
	alt, err := c.checkExpr(scope, ifx.Alt)
	if err != nil {
		return types.NoTypeID, err
	}
	return c.types.Merge(cons, alt), nil
}

// checkWhile types the loop as a value-producing construct: an array with
// one body element per notional iteration.
func (c *Checker) checkWhile(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	wh := c.arenas.While(id)
	if err := c.requireBool(scope, wh.Cond); err != nil {
		return types.NoTypeID, err
	}
	body, err := c.checkExpr(scope, wh.Body)
	if err != nil {
		return types.NoTypeID, err
	}
	return c.types.Array(body), nil
}

func (c *Checker) checkTupleLit(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	tuple := c.arenas.TupleLit(id)
	elems := make([]types.TypeID, len(tuple.Elems))
	for i, e := range tuple.Elems {
		ty, err := c.checkExpr(scope, e)
		if err != nil {
			return types.NoTypeID, err
		}
		elems[i] = ty
	}
	return c.types.Tuple(elems), nil
}

// checkClosure binds the parameters in a child scope and infers the body. A
// declared result annotation constrains the body, but the synthesized
// function type carries the inferred body type.
func (c *Checker) checkClosure(scope symbols.ScopeID, id ast.ExprID) (types.TypeID, error) {
	cl := c.arenas.Closure(id)
	child := c.table.NewChild(scope)
	for _, param := range cl.Params {
		c.table.Insert(child, param.Name, c.table.AddItem(symbols.NewVariable(param.Type)))
	}

	body, err := c.checkExpr(child, cl.Body)
	if err != nil {
		return types.NoTypeID, err
	}
	if cl.Result != types.NoTypeID && !c.types.Satisfies(body, cl.Result) {
		return types.NoTypeID, &InvalidTypeError{
			Expected: cl.Result,
			Found:    body,
			Span:     c.arenas.Exprs.Get(cl.Body).Span,
			Types:    c.types,
		}
	}
	return c.types.Fn(ast.ParamTypes(cl.Params), body), nil
}

func (c *Checker) requireBool(scope symbols.ScopeID, cond ast.ExprID) error {
	ty, err := c.checkExpr(scope, cond)
	if err != nil {
		return err
	}
	if !c.types.Satisfies(ty, c.types.Builtins().Bool) {
		return &InvalidTypeError{
			Expected: c.types.Builtins().Bool,
			Found:    ty,
			Span:     c.arenas.Exprs.Get(cond).Span,
			Types:    c.types,
		}
	}
	return nil
}

// integerLiteralType picks the narrowest signed integer type that fits the
// literal value.
func (c *Checker) integerLiteralType(value uint64) types.TypeID {
	b := c.types.Builtins()
	switch {
	case value <= math.MaxInt8:
		return b.I8
	case value <= math.MaxInt16:
		return b.I16
	case value <= math.MaxInt32:
		return b.I32
	case value <= math.MaxInt64:
		return b.I64
	default:
		return b.I128
	}
}
