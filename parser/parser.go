// Package parser is a recursive-descent parser with a dedicated
// operator-precedence expression sub-parser. It consumes a lexer token
// stream and produces a typed AST module, accumulating errors rather than
// aborting on the first fault.
package parser

import (
	"fmt"
	"strconv"

	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/diag"
	"github.com/chazu/junoc/lexer"
	"github.com/chazu/junoc/source"
	"github.com/chazu/junoc/token"
)

// Parser parses a token stream into an ast.Module.
type Parser struct {
	lex       *lexer.Lexer
	cur, peek token.Token
	sink      *diag.Sink
	loopDepth int
}

// New creates a parser over buf. Both lexer and parser diagnostics are
// accumulated into the returned parser's sink.
func New(buf *source.Buffer) *Parser {
	sink := &diag.Sink{}
	p := &Parser{lex: lexer.New(buf, sink), sink: sink}
	p.next()
	p.next()
	return p
}

// Parse is the convenience entry point: parse(source) -> (module, errors).
// It lexes buf and parses the resulting tokens in one step.
func Parse(buf *source.Buffer) (*ast.Module, diag.List) {
	p := New(buf)
	m := p.ParseModule()
	p.sink.Dedup()
	return m, p.sink.Errors()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) curIsSym(s token.Symbol) bool {
	return p.cur.Type == token.SymbolTok && p.cur.Sym == s
}

func (p *Parser) curIsOp(o token.Operator) bool {
	return p.cur.Type == token.OperatorTok && p.cur.Op == o
}

func (p *Parser) curIsIdent(name string) bool {
	return p.cur.Type == token.Identifier && p.cur.Ident == name
}

func (p *Parser) isArrow() bool {
	return p.curIsOp(token.Sub) && p.peek.Type == token.OperatorTok && p.peek.Op == token.Gt
}

func (p *Parser) consumeArrow() {
	p.next()
	p.next()
}

func (p *Parser) expectSym(s token.Symbol) bool {
	if p.curIsSym(s) {
		p.next()
		return true
	}
	p.errorf("expected %q, got %s", s.String(), p.tokenText(p.cur))
	return false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.sink.Add(&diag.Error{
		Message: fmt.Sprintf(format, args...),
		Index:   p.cur.Index,
		Line:    p.cur.Line,
		Column:  p.cur.Column,
		Token:   p.tokenText(p.cur),
	})
}

func (p *Parser) tokenText(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "<eof>"
	case token.Identifier:
		return t.Ident
	case token.OperatorTok:
		return t.Op.String()
	case token.SymbolTok:
		return t.Sym.String()
	case token.Integer:
		return strconv.FormatInt(t.Int, 10)
	case token.Uinteger:
		return strconv.FormatUint(t.Uint, 10)
	case token.Floating:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case token.Imaginary:
		return strconv.FormatFloat(t.Imaginary, 'g', -1, 64) + "i"
	case token.Character:
		return string(t.Char)
	case token.String:
		return t.Str
	case token.Buffer:
		return string(t.Buf)
	default:
		return "<invalid>"
	}
}

// ---------------------------------------------------------------------------
// Module scope (parseWhole)
// ---------------------------------------------------------------------------

// ParseModule parses the whole token stream into a module. It always
// returns a non-nil module, even when errors were recorded.
func (p *Parser) ParseModule() *ast.Module {
	m := &ast.Module{Base: ast.Base{Index: p.cur.Index}}

	for p.cur.Type != token.EOF {
		if p.curIsSym(token.Semi) {
			p.next()
			continue
		}

		isPublic, isStatic := p.parseAccessAttributes()

		switch {
		case p.curIsIdent("def") || p.curIsIdent("try"):
			if fn := p.parseFunction(isPublic, isStatic); fn != nil {
				if len(fn.Path) == 0 {
					p.errorf("a lambda must not appear at module scope")
				}
				m.Functions = append(m.Functions, fn)
			}
		case p.curIsIdent("class"):
			if ut := p.parseUserType(true, isPublic, isStatic); ut != nil {
				m.UserTypes = append(m.UserTypes, ut)
			}
		case p.curIsIdent("struct"):
			if ut := p.parseUserType(false, isPublic, isStatic); ut != nil {
				m.UserTypes = append(m.UserTypes, ut)
			}
		case p.curIsIdent("enum"):
			if et := p.parseEnum(isPublic, isStatic); et != nil {
				m.Enums = append(m.Enums, et)
			}
		case p.curIsIdent("import"):
			if im := p.parseImportOrInclude(false, isPublic, isStatic); im != nil {
				m.Imports = append(m.Imports, im)
			}
		case p.curIsIdent("include"):
			if im := p.parseImportOrInclude(true, isPublic, isStatic); im != nil {
				m.Imports = append(m.Imports, im)
			}
		case p.cur.Type == token.Identifier:
			if d := p.parseTopLevelDeclaration(isPublic, isStatic); d != nil {
				m.Decls = append(m.Decls, d)
			}
		default:
			p.errorf("unexpected token %s at module scope", p.tokenText(p.cur))
			p.next()
		}
	}

	return m
}

// parseAccessAttributes consumes a leading run of {public, private, static}.
// public is the default; repeating public/private/static, or specifying
// both public and private, is an error, but the latest seen value wins.
func (p *Parser) parseAccessAttributes() (isPublic, isStatic bool) {
	isPublic = true
	seenPublic, seenPrivate, seenStatic := false, false, false

	for {
		switch {
		case p.curIsIdent("public"):
			if seenPublic || seenPrivate {
				p.errorf("repeated or conflicting access attribute 'public'")
			}
			seenPublic = true
			isPublic = true
			p.next()
		case p.curIsIdent("private"):
			if seenPrivate || seenPublic {
				p.errorf("repeated or conflicting access attribute 'private'")
			}
			seenPrivate = true
			isPublic = false
			p.next()
		case p.curIsIdent("static"):
			if seenStatic {
				p.errorf("repeated access attribute 'static'")
			}
			seenStatic = true
			isStatic = true
			p.next()
		default:
			return isPublic, isStatic
		}
	}
}

// ---------------------------------------------------------------------------
// Imports / includes
// ---------------------------------------------------------------------------

func (p *Parser) parseImportOrInclude(isInclude, isPublic, isStatic bool) *ast.Import {
	start := p.cur.Index
	if isStatic {
		p.errorf("'static' is not valid on an import/include declaration")
	}
	p.next() // consume import/include

	isRelative := false
	if p.curIsSym(token.Dot) {
		isRelative = true
		p.next()
	}

	var path []string
	for {
		if p.cur.Type != token.Identifier {
			p.errorf("expected identifier in import path")
			break
		}
		if token.IsReserved(p.cur.Ident) {
			p.errorf("reserved keyword %q used as import path component", p.cur.Ident)
		}
		path = append(path, p.cur.Ident)
		p.next()
		if p.curIsSym(token.Dot) {
			p.next()
			continue
		}
		break
	}

	alias := ""
	if p.curIsIdent("as") {
		if isInclude {
			p.errorf("'as' is not permitted for 'include'")
		}
		p.next()
		if p.cur.Type == token.Identifier {
			alias = p.cur.Ident
			p.next()
		} else {
			p.errorf("expected identifier after 'as'")
		}
	}
	if alias == "" && len(path) > 0 {
		alias = path[len(path)-1]
	}

	p.expectSym(token.Semi)

	return &ast.Import{
		Base: ast.Base{Index: start}, Path: path, IsInclude: isInclude,
		IsRelative: isRelative, IsPublic: isPublic, Alias: alias,
	}
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// parseDeclaration parses `ref* TypeName [N]* Name (tuple-init | = expr)?`.
func (p *Parser) parseDeclaration(isPublic, isStatic bool) *ast.Declaration {
	start := p.cur.Index

	refDepth := 0
	for p.curIsIdent("ref") {
		refDepth++
		p.next()
	}

	if p.cur.Type != token.Identifier {
		p.errorf("expected type name in declaration")
		return nil
	}
	typeName := p.cur.Ident
	p.next()

	var dims []int
	for p.curIsSym(token.LBracket) {
		dims = append(dims, p.parseArrayDim())
	}

	if p.cur.Type != token.Identifier {
		p.errorf("expected variable name in declaration")
		return nil
	}
	name := p.cur.Ident
	p.next()

	var init ast.Expr
	isTuple := false
	if p.curIsSym(token.LParen) {
		isTuple = true
		init = p.parseTupleOrParenExpr()
	} else if p.curIsOp(token.Assign) {
		p.next()
		init = p.parseExpr()
	}

	return &ast.Declaration{
		Base: ast.Base{Index: start}, TypeName: typeName, ArrayDims: dims,
		Name: name, RefDepth: refDepth, Init: init, IsTuple: isTuple,
		IsPublic: isPublic, IsStatic: isStatic,
	}
}

func (p *Parser) parseParamDeclaration() *ast.Declaration {
	return p.parseDeclaration(true, false)
}

func (p *Parser) parseTopLevelDeclaration(isPublic, isStatic bool) *ast.Declaration {
	d := p.parseDeclaration(isPublic, isStatic)
	if d == nil {
		p.next()
		return nil
	}
	p.expectSym(token.Semi)
	return d
}

func (p *Parser) parseArrayDim() int {
	p.next() // consume '['
	n := 0
	if p.cur.Type == token.Integer {
		n = int(p.cur.Int)
		p.next()
	} else {
		p.errorf("expected integer array dimension")
	}
	p.expectSym(token.RBracket)
	if n <= 0 {
		p.errorf("array dimension must be positive")
	}
	return n
}

func (p *Parser) parseGenericParamNames() []string {
	p.next() // consume '!'
	var names []string
	if p.curIsSym(token.LParen) {
		p.next()
		for p.cur.Type == token.Identifier {
			names = append(names, p.cur.Ident)
			p.next()
			if p.curIsSym(token.Comma) {
				p.next()
				continue
			}
			break
		}
		p.expectSym(token.RParen)
	} else if p.cur.Type == token.Identifier {
		names = append(names, p.cur.Ident)
		p.next()
	} else {
		p.errorf("expected generic parameter list after '!'")
	}
	return names
}

// ---------------------------------------------------------------------------
// Functions
// ---------------------------------------------------------------------------

func (p *Parser) parseFunction(isPublic, isStatic bool) *ast.Function {
	start := p.cur.Index
	isConditional := false
	if p.curIsIdent("try") {
		isConditional = true
		p.next()
		if !p.curIsIdent("def") {
			p.errorf("expected 'def' after 'try'")
		}
	}
	if !p.curIsIdent("def") {
		p.errorf("expected 'def'")
		return nil
	}
	p.next() // consume def

	if p.curIsSym(token.LParen) {
		// Lambda at module/type scope: valid lexically, but the caller is
		// responsible for rejecting it outside an expression body.
		return p.parseFunctionRest(start, nil, nil, nil, isConditional, isPublic, isStatic)
	}

	var path []string
	for p.cur.Type == token.Identifier {
		if token.IsReserved(p.cur.Ident) {
			p.errorf("reserved keyword %q used as identifier", p.cur.Ident)
		}
		path = append(path, p.cur.Ident)
		p.next()
		if p.curIsSym(token.Dot) {
			p.next()
			continue
		}
		break
	}

	var generics []string
	if p.curIsOp(token.Not) {
		generics = p.parseGenericParamNames()
	}

	var recvDims []int
	for p.curIsSym(token.LBracket) {
		recvDims = append(recvDims, p.parseArrayDim())
	}

	// Extra identifier: `def float[3].add(...) {}` extends an array type.
	if p.curIsSym(token.Dot) {
		p.next()
		if p.cur.Type == token.Identifier {
			path = append(path, p.cur.Ident)
			p.next()
		} else {
			p.errorf("expected an identifier after the dot in the function declaration name")
		}
	}

	return p.parseFunctionRest(start, path, generics, recvDims, isConditional, isPublic, isStatic)
}

func (p *Parser) parseFunctionRest(start int, path, generics []string, recvDims []int, isConditional, isPublic, isStatic bool) *ast.Function {
	fn := &ast.Function{
		Base: ast.Base{Index: start}, Path: path, Generics: generics, ReceiverDims: recvDims,
		ReturnType: "void", IsConditional: isConditional, IsPublic: isPublic, IsStatic: isStatic,
	}

	if !p.expectSym(token.LParen) {
		return fn
	}
	for !p.curIsSym(token.RParen) && p.cur.Type != token.EOF {
		if d := p.parseParamDeclaration(); d != nil {
			fn.Params = append(fn.Params, d)
		}
		if p.curIsSym(token.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expectSym(token.RParen)

	if p.isArrow() {
		p.consumeArrow()
		for p.curIsIdent("ref") {
			fn.ReturnRefDepth++
			p.next()
		}
		if p.cur.Type == token.Identifier {
			fn.ReturnType = p.cur.Ident
			p.next()
		} else {
			p.errorf("expected return type after '->'")
		}
		for p.curIsSym(token.LBracket) {
			fn.ReturnArrayDims = append(fn.ReturnArrayDims, p.parseArrayDim())
		}
	}

	if !p.expectSym(token.LBrace) {
		return fn
	}
	fn.Body = p.parseBody()
	p.expectSym(token.RBrace)

	return fn
}

// ---------------------------------------------------------------------------
// User types (class/struct)
// ---------------------------------------------------------------------------

func (p *Parser) parseUserType(isClass, isPublic, isStatic bool) *ast.UserType {
	start := p.cur.Index
	if isStatic {
		p.errorf("'static' is not valid on a class/struct declaration")
	}
	p.next() // consume class/struct

	var path []string
	for p.cur.Type == token.Identifier {
		if token.IsReserved(p.cur.Ident) {
			p.errorf("reserved keyword %q used as identifier", p.cur.Ident)
		}
		path = append(path, p.cur.Ident)
		p.next()
		if p.curIsSym(token.Dot) {
			p.next()
			continue
		}
		break
	}

	var generics []string
	if p.curIsOp(token.Not) {
		generics = p.parseGenericParamNames()
	}

	baseType := ""
	if p.curIsSym(token.LParen) {
		p.next()
		if p.cur.Type == token.Identifier {
			baseType = p.cur.Ident
			p.next()
		} else {
			p.errorf("expected base type identifier")
		}
		p.expectSym(token.RParen)
	}

	ut := &ast.UserType{
		Base: ast.Base{Index: start}, Path: path, BaseType: baseType,
		Generics: generics, IsClass: isClass, IsPublic: isPublic,
	}

	if !p.expectSym(token.LBrace) {
		return ut
	}

	for !p.curIsSym(token.RBrace) && p.cur.Type != token.EOF {
		if p.curIsSym(token.Semi) {
			p.next()
			continue
		}
		mPublic, mStatic := p.parseAccessAttributes()
		switch {
		case p.curIsIdent("def") || p.curIsIdent("try"):
			fn := p.parseFunction(mPublic, mStatic)
			if fn != nil {
				if len(fn.Generics) > 0 {
					p.errorf("a method must not declare generic parameters")
				}
				if len(fn.Path) == 0 {
					p.errorf("a method must not be a lambda")
				}
				ut.Methods = append(ut.Methods, fn)
			}
		case p.cur.Type == token.Identifier:
			d := p.parseDeclaration(mPublic, mStatic)
			if d != nil {
				p.expectSym(token.Semi)
				ut.Members = append(ut.Members, d)
			} else {
				p.next()
			}
		default:
			p.errorf("unexpected token %s in type body", p.tokenText(p.cur))
			p.next()
		}
	}
	p.expectSym(token.RBrace)

	return ut
}

// ---------------------------------------------------------------------------
// Enums
// ---------------------------------------------------------------------------

func (p *Parser) parseEnum(isPublic, isStatic bool) *ast.EnumType {
	start := p.cur.Index
	if isStatic {
		p.errorf("'static' is not valid on an enum declaration")
	}
	p.next() // consume enum

	var path []string
	for p.cur.Type == token.Identifier {
		path = append(path, p.cur.Ident)
		p.next()
		if p.curIsSym(token.Dot) {
			p.next()
			continue
		}
		break
	}

	if p.curIsOp(token.Not) {
		p.errorf("generic parameters are not valid on an enum declaration")
		p.parseGenericParamNames()
	}

	et := &ast.EnumType{Base: ast.Base{Index: start}, Path: path, IsPublic: isPublic}

	if !p.expectSym(token.LBrace) {
		return et
	}

	seenNames := map[string]bool{}
	seenValues := map[uint64]bool{}
	var counter uint64

	for !p.curIsSym(token.RBrace) && p.cur.Type != token.EOF {
		if p.cur.Type != token.Identifier {
			p.errorf("expected enum member name")
			p.next()
			continue
		}
		name := p.cur.Ident
		p.next()

		value := counter
		if p.curIsOp(token.Assign) {
			p.next()
			switch p.cur.Type {
			case token.Integer:
				value = uint64(p.cur.Int)
			case token.Uinteger:
				value = p.cur.Uint
			default:
				p.errorf("expected unsigned integer literal for enum value")
			}
			p.next()
		}
		counter = value + 1

		if seenNames[name] {
			p.errorf("duplicate enum member name %q", name)
		}
		if seenValues[value] {
			p.errorf("duplicate enum member value %d", value)
		}
		seenNames[name] = true
		seenValues[value] = true

		et.Members = append(et.Members, ast.EnumMember{Name: name, Value: value})

		if p.curIsSym(token.Comma) {
			p.next()
			continue
		}
		break
	}
	p.expectSym(token.RBrace)

	return et
}

// ---------------------------------------------------------------------------
// Statement bodies
// ---------------------------------------------------------------------------

func (p *Parser) parseBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.curIsSym(token.RBrace) && p.cur.Type != token.EOF {
		if p.curIsSym(token.Semi) {
			p.next()
			continue
		}
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// parseBlockOrStmt parses either a braced block or a single statement, used
// for if/elif/else/while/for bodies which need not be brace-delimited.
func (p *Parser) parseBlockOrStmt() []ast.Stmt {
	if p.curIsSym(token.LBrace) {
		p.next()
		b := p.parseBody()
		p.expectSym(token.RBrace)
		return b
	}
	s := p.parseStatement()
	if s == nil {
		return nil
	}
	return []ast.Stmt{s}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.curIsIdent("if"):
		return p.parseIf()
	case p.curIsIdent("while"):
		return p.parseWhile()
	case p.curIsIdent("do"):
		return p.parseDoWhile()
	case p.curIsIdent("for"):
		return p.parseFor()
	case p.curIsIdent("continue"):
		return p.parseLoopCtl(ast.Continue)
	case p.curIsIdent("break"):
		return p.parseLoopCtl(ast.Break)
	case p.curIsIdent("return"):
		return p.parseReturn()
	default:
		return p.parseSimpleStatement()
	}
}

// looksLikeDeclarationStart detects the declaration-as-expression pattern:
// an identifier (the type name) followed by another identifier (the
// variable name) or by '[' (array dimensions). A leading 'sizeof' never
// starts a declaration; a leading 'ref' starts one only when a type name
// and then a variable name or '[' follow it.
func (p *Parser) looksLikeDeclarationStart() bool {
	if p.cur.Type != token.Identifier || p.curIsIdent("sizeof") {
		return false
	}
	if p.curIsIdent("ref") {
		// Look one token past peek, then restore the lexer and the sink.
		savedLex, savedSink := *p.lex, *p.sink
		third := p.lex.Next()
		*p.lex, *p.sink = savedLex, savedSink
		return p.peek.Type == token.Identifier &&
			(third.Type == token.Identifier || (third.Type == token.SymbolTok && third.Sym == token.LBracket))
	}
	if p.peek.Type == token.Identifier {
		return true
	}
	if p.peek.Type == token.SymbolTok && p.peek.Sym == token.LBracket {
		return true
	}
	return false
}

func (p *Parser) parseSimpleStatement() ast.Stmt {
	if p.looksLikeDeclarationStart() {
		d := p.parseDeclaration(true, false)
		p.expectSym(token.Semi)
		return d
	}
	start := p.cur.Index
	e := p.parseExpr()
	p.expectSym(token.Semi)
	return &ast.ExprStmt{Base: ast.Base{Index: start}, X: e}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.cur.Index
	p.next() // consume if
	p.expectSym(token.LParen)
	cond := p.parseExpr()
	p.expectSym(token.RParen)
	body := p.parseBlockOrStmt()

	conds := []ast.Expr{cond}
	bodies := [][]ast.Stmt{body}

	for p.curIsIdent("elif") {
		p.next()
		p.expectSym(token.LParen)
		c := p.parseExpr()
		p.expectSym(token.RParen)
		b := p.parseBlockOrStmt()
		conds = append(conds, c)
		bodies = append(bodies, b)
	}

	var elseBody []ast.Stmt
	if p.curIsIdent("else") {
		p.next()
		elseBody = p.parseBlockOrStmt()
	}

	return &ast.If{Base: ast.Base{Index: start}, Conditions: conds, Bodies: bodies, Else: elseBody}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.cur.Index
	p.next() // consume while
	p.expectSym(token.LParen)
	cond := p.parseExpr()
	p.expectSym(token.RParen)
	p.loopDepth++
	body := p.parseBlockOrStmt()
	p.loopDepth--
	return &ast.While{Base: ast.Base{Index: start}, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() ast.Stmt {
	start := p.cur.Index
	p.next() // consume do
	p.expectSym(token.LBrace)
	p.loopDepth++
	body := p.parseBody()
	p.loopDepth--
	p.expectSym(token.RBrace)
	if !p.curIsIdent("while") {
		p.errorf("expected 'while' after 'do' block")
	} else {
		p.next()
	}
	p.expectSym(token.LParen)
	cond := p.parseExpr()
	p.expectSym(token.RParen)
	p.expectSym(token.Semi)
	return &ast.DoWhile{Base: ast.Base{Index: start}, Body: body, Cond: cond}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.cur.Index
	p.next() // consume for

	if p.cur.Type == token.Identifier && p.peek.Type == token.SymbolTok && p.peek.Sym == token.Colon {
		target := p.cur.Ident
		p.next() // consume target
		p.next() // consume ':'
		iter := p.parseExpr()
		p.loopDepth++
		body := p.parseBlockOrStmt()
		p.loopDepth--
		return &ast.ForEach{Base: ast.Base{Index: start}, Target: target, Iterator: iter, Body: body}
	}

	var init ast.Stmt
	if p.looksLikeDeclarationStart() {
		init = p.parseDeclaration(true, false)
	} else if !p.curIsSym(token.Comma) {
		e := p.parseExpr()
		init = &ast.ExprStmt{Base: ast.Base{Index: e.Pos()}, X: e}
	}
	p.expectSym(token.Comma)

	var cond ast.Expr
	if !p.curIsSym(token.Comma) {
		cond = p.parseExpr()
	}
	p.expectSym(token.Comma)

	var step ast.Expr
	if !p.curIsSym(token.LBrace) {
		step = p.parseExpr()
	}

	p.loopDepth++
	body := p.parseBlockOrStmt()
	p.loopDepth--
	return &ast.For{Base: ast.Base{Index: start}, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) parseLoopCtl(kind ast.LoopCtlKind) ast.Stmt {
	start := p.cur.Index
	kw := "continue"
	if kind == ast.Break {
		kw = "break"
	}
	p.next() // consume continue/break

	loopCount := 0
	if p.cur.Type == token.Integer {
		loopCount = int(p.cur.Int)
		p.next()
	}

	if p.loopDepth == 0 {
		p.errorf("%q outside a loop", kw)
	} else if loopCount != 0 && loopCount >= p.loopDepth {
		p.errorf("%s depth %d is not less than the enclosing loop depth %d", kw, loopCount, p.loopDepth)
	}

	p.expectSym(token.Semi)
	return &ast.LoopCtl{Base: ast.Base{Index: start}, Kind: kind, LoopCount: loopCount}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.cur.Index
	p.next() // consume return
	var e ast.Expr
	if !p.curIsSym(token.Semi) {
		e = p.parseExpr()
	}
	p.expectSym(token.Semi)
	return &ast.LoopCtl{Base: ast.Base{Index: start}, Kind: ast.Return, Expr: e}
}
