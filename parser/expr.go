package parser

import (
	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/token"
)

// parseExpr is the expression entry point.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment handles `=` and the in-place forms, right-associative.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseLogicalOr()
	if p.cur.Type == token.OperatorTok && isAssignOp(p.cur.Op) {
		op := p.cur.Op
		start := left.Pos()
		p.next()
		right := p.parseAssignment()
		return &ast.BinaryOp{Base: ast.Base{Index: start}, Op: op, Left: left, Right: right}
	}
	return left
}

func isAssignOp(op token.Operator) bool {
	switch op {
	case token.Assign, token.AddAssign, token.SubAssign, token.MulAssign,
		token.DivAssign, token.ModAssign, token.PowAssign:
		return true
	}
	return false
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.curIsOp(token.Or) {
		start := left.Pos()
		p.next()
		right := p.parseLogicalAnd()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: token.Or, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseComparison()
	for p.curIsOp(token.And) {
		start := left.Pos()
		p.next()
		right := p.parseComparison()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: token.And, Left: left, Right: right}
	}
	return left
}

func isComparisonOp(op token.Operator) bool {
	switch op {
	case token.Eq, token.Ne, token.Lt, token.Gt, token.Le, token.Ge:
		return true
	}
	return false
}

// parseComparison folds a run of comparisons like `a < b <= c` into a single
// ComparisonChain node rather than nested binary operators.
func (p *Parser) parseComparison() ast.Expr {
	start := p.cur.Index
	first := p.parseBitOr()
	if !(p.cur.Type == token.OperatorTok && isComparisonOp(p.cur.Op)) {
		return first
	}

	values := []ast.Expr{first}
	var ops []token.Operator
	for p.cur.Type == token.OperatorTok && isComparisonOp(p.cur.Op) {
		ops = append(ops, p.cur.Op)
		p.next()
		values = append(values, p.parseBitOr())
	}
	return &ast.ComparisonChain{Base: ast.Base{Index: start}, Values: values, Ops: ops}
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitAnd()
	for p.curIsOp(token.BitOr) {
		start := left.Pos()
		p.next()
		right := p.parseBitAnd()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: token.BitOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseShift()
	for p.curIsOp(token.BitAnd) {
		start := left.Pos()
		p.next()
		right := p.parseShift()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: token.BitAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseShift() ast.Expr {
	left := p.parseAdditive()
	for p.curIsOp(token.Shl) || p.curIsOp(token.Shr) {
		op := p.cur.Op
		start := left.Pos()
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.curIsOp(token.Add) || p.curIsOp(token.Sub) {
		op := p.cur.Op
		start := left.Pos()
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePower()
	for p.curIsOp(token.Mul) || p.curIsOp(token.Div) || p.curIsOp(token.Mod) {
		op := p.cur.Op
		start := left.Pos()
		p.next()
		right := p.parsePower()
		left = &ast.BinaryOp{Base: ast.Base{Index: start}, Op: op, Left: left, Right: right}
	}
	return left
}

// parsePower handles right-associative `^`, binding tighter than the
// arithmetic levels above but looser than unary prefix operators: its
// operand source is parseUnary, so `-2^2` is UnaryOp(-, 2) raised to 2.
func (p *Parser) parsePower() ast.Expr {
	left := p.parseUnary()
	if p.curIsOp(token.Pow) {
		start := left.Pos()
		p.next()
		right := p.parsePower() // right-associative
		return &ast.BinaryOp{Base: ast.Base{Index: start}, Op: token.Pow, Left: left, Right: right}
	}
	return left
}

func isUnaryPrefixOp(op token.Operator) bool {
	switch op {
	case token.Add, token.Sub, token.BitNot, token.Not, token.Inc, token.Dec:
		return true
	}
	return false
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.cur.Index
	if p.curIsIdent("ref") {
		p.next()
		x := p.parseUnary()
		return &ast.UnaryOp{Base: ast.Base{Index: start}, Op: token.Ref, X: x}
	}
	if p.curIsIdent("sizeof") {
		p.next()
		x := p.parseUnary()
		return &ast.UnaryOp{Base: ast.Base{Index: start}, Op: token.Sizeof, X: x}
	}
	if p.cur.Type == token.OperatorTok && isUnaryPrefixOp(p.cur.Op) {
		op := p.cur.Op
		p.next()
		x := p.parseUnary()
		return &ast.UnaryOp{Base: ast.Base{Index: start}, Op: op, X: x}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		start := x.Pos()
		switch {
		case p.curIsOp(token.Inc):
			p.next()
			x = &ast.RevUnaryOp{Base: ast.Base{Index: start}, Op: token.Inc, X: x}
		case p.curIsOp(token.Dec):
			p.next()
			x = &ast.RevUnaryOp{Base: ast.Base{Index: start}, Op: token.Dec, X: x}
		case p.curIsSym(token.LBracket):
			p.next()
			idx := p.parseExpr()
			p.expectSym(token.RBracket)
			x = &ast.Subscript{Base: ast.Base{Index: start}, X: x, Index: idx}
		case p.curIsSym(token.LParen):
			p.next()
			var args []ast.Expr
			for !p.curIsSym(token.RParen) && p.cur.Type != token.EOF {
				args = append(args, p.parseExpr())
				if p.curIsSym(token.Comma) {
					p.next()
					continue
				}
				break
			}
			p.expectSym(token.RParen)
			x = &ast.Call{Base: ast.Base{Index: start}, Callee: x, Args: args}
		case p.curIsSym(token.Dot):
			p.next()
			if p.cur.Type != token.Identifier {
				p.errorf("expected field name after '.'")
				break
			}
			field := p.cur.Ident
			p.next()
			x = &ast.Scoping{Base: ast.Base{Index: start}, X: x, Field: field}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur.Index

	switch p.cur.Type {
	case token.Integer:
		v := p.cur.Int
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValInteger, Int: v}
	case token.Uinteger:
		v := p.cur.Uint
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValUinteger, Uint: v}
	case token.Floating:
		v := p.cur.Float
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValFloating, Float: v}
	case token.Imaginary:
		v := p.cur.Imaginary
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValImaginary, Imag: v}
	case token.Character:
		v := p.cur.Char
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValCharacter, Char: v}
	case token.String:
		v := p.cur.Str
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValString, Str: v}
	case token.Buffer:
		v := p.cur.Buf
		p.next()
		return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValBuffer, Buf: v}
	}

	switch {
	case p.curIsSym(token.LParen):
		return p.parseTupleOrParenExpr()
	case p.curIsSym(token.LBracket):
		return p.parseListLiteral()
	case p.curIsSym(token.LBrace):
		return p.parseDictLiteral()
	case p.curIsIdent("def"):
		return p.parseLambda()
	case p.cur.Type == token.Identifier:
		return p.parseIdentifiersExpr()
	}

	p.errorf("unexpected token %s in expression", p.tokenText(p.cur))
	p.next()
	return &ast.Value{Base: ast.Base{Index: start}, Kind: ast.ValInteger, Int: 0}
}

// parseIdentifiersExpr parses a single-segment name with optional generic
// arguments. Dotted access is handled uniformly by the postfix Scoping node,
// not folded into this atom.
func (p *Parser) parseIdentifiersExpr() ast.Expr {
	start := p.cur.Index
	name := p.cur.Ident
	p.next()

	var generics []ast.GenericArg
	if p.curIsOp(token.Not) {
		generics = p.parseGenericArgs()
	}

	return &ast.Identifiers{Base: ast.Base{Index: start}, Path: []string{name}, Generics: generics}
}

// parseGenericArgs parses a usage-site `!Ident` or `!(A, ref B[3], ...)`
// generic argument list.
func (p *Parser) parseGenericArgs() []ast.GenericArg {
	p.next() // consume '!'
	if p.curIsSym(token.LParen) {
		p.next()
		var args []ast.GenericArg
		for !p.curIsSym(token.RParen) && p.cur.Type != token.EOF {
			args = append(args, p.parseGenericArg())
			if p.curIsSym(token.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expectSym(token.RParen)
		return args
	}
	return []ast.GenericArg{p.parseGenericArg()}
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	refDepth := 0
	for p.curIsIdent("ref") {
		refDepth++
		p.next()
	}
	name := ""
	if p.cur.Type == token.Identifier {
		name = p.cur.Ident
		p.next()
	} else {
		p.errorf("expected type name in generic argument")
	}
	var dims []int
	for p.curIsSym(token.LBracket) {
		dims = append(dims, p.parseArrayDim())
	}
	return ast.GenericArg{Name: name, RefDepth: refDepth, ArrayDims: dims}
}

// parseTupleOrParenExpr parses a parenthesized expression, collapsing a
// single element without a comma to its bare value and building an
// ast.Tuple for `()` and for any list that contains a comma, so `(a,)` is a
// one-element Tuple.
func (p *Parser) parseTupleOrParenExpr() ast.Expr {
	start := p.cur.Index
	p.next() // consume '('

	if p.curIsSym(token.RParen) {
		p.next()
		return &ast.Tuple{Base: ast.Base{Index: start}}
	}

	first := p.parseExpr()
	if !p.curIsSym(token.Comma) {
		p.expectSym(token.RParen)
		return first
	}

	elems := []ast.Expr{first}
	for p.curIsSym(token.Comma) {
		p.next()
		if p.curIsSym(token.RParen) {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expectSym(token.RParen)
	return &ast.Tuple{Base: ast.Base{Index: start}, Elems: elems}
}

func (p *Parser) parseListLiteral() ast.Expr {
	start := p.cur.Index
	p.next() // consume '['
	var elems []ast.Expr
	for !p.curIsSym(token.RBracket) && p.cur.Type != token.EOF {
		elems = append(elems, p.parseExpr())
		if p.curIsSym(token.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expectSym(token.RBracket)
	return &ast.List{Base: ast.Base{Index: start}, Elems: elems}
}

func (p *Parser) parseDictLiteral() ast.Expr {
	start := p.cur.Index
	p.next() // consume '{'
	var keys, items []ast.Expr
	for !p.curIsSym(token.RBrace) && p.cur.Type != token.EOF {
		k, v := p.parseDictEntry()
		keys = append(keys, k)
		items = append(items, v)
		if p.curIsSym(token.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expectSym(token.RBrace)
	return &ast.Dict{Base: ast.Base{Index: start}, Keys: keys, Items: items}
}

func (p *Parser) parseDictEntry() (ast.Expr, ast.Expr) {
	k := p.parseExpr()
	p.expectSym(token.Colon)
	v := p.parseExpr()
	return k, v
}

// parseLambda parses an anonymous `def (params) [-> ret] { body }` value.
func (p *Parser) parseLambda() ast.Expr {
	start := p.cur.Index
	p.next() // consume 'def'
	fn := p.parseFunctionRest(start, nil, nil, nil, false, true, false)
	return &ast.Lambda{Base: ast.Base{Index: start}, Fn: fn}
}
