// Package junoc is the front end of a statically-typed, curly-braced
// language: a lexer and recursive-descent parser that turn source text into
// a token stream and an AST, accumulating diagnostics instead of aborting
// on the first one.
package junoc

import (
	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/diag"
	"github.com/chazu/junoc/lexer"
	"github.com/chazu/junoc/parser"
	"github.com/chazu/junoc/source"
	"github.com/chazu/junoc/token"
)

// Compile lexes and parses src in one step, returning the resulting module
// and any diagnostics collected along the way.
func Compile(src string) (*ast.Module, diag.List) {
	return parser.Parse(source.NewFromString(src))
}

// Tokenize lexes src and returns its token stream without parsing.
func Tokenize(src string) ([]token.Token, diag.List) {
	return lexer.Lex(source.NewFromString(src))
}
