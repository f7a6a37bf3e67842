// Package wire serializes tokens and module signatures to canonical CBOR,
// for tooling that wants to pass compiler output between processes without
// re-parsing source text.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/junoc/ast"
	"github.com/chazu/junoc/token"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalTokens serializes a token stream to CBOR bytes.
func MarshalTokens(toks []token.Token) ([]byte, error) {
	return cborEncMode.Marshal(toks)
}

// UnmarshalTokens deserializes a token stream from CBOR bytes.
func UnmarshalTokens(data []byte) ([]token.Token, error) {
	var toks []token.Token
	if err := cbor.Unmarshal(data, &toks); err != nil {
		return nil, fmt.Errorf("wire: unmarshal tokens: %w", err)
	}
	return toks, nil
}

// DeclSig is the wire form of a variable declaration: everything about it
// except Init, which holds an ast.Expr interface value CBOR cannot decode
// back without a registered concrete-type tag set. HasInit records whether
// an initializer was present in the source.
type DeclSig struct {
	TypeName  string
	ArrayDims []int
	Name      string
	RefDepth  int
	HasInit   bool
	IsTuple   bool
	IsPublic  bool
	IsStatic  bool
}

func toDeclSig(d *ast.Declaration) DeclSig {
	return DeclSig{
		TypeName: d.TypeName, ArrayDims: d.ArrayDims, Name: d.Name, RefDepth: d.RefDepth,
		HasInit: d.Init != nil, IsTuple: d.IsTuple, IsPublic: d.IsPublic, IsStatic: d.IsStatic,
	}
}

func toDeclSigs(decls []*ast.Declaration) []DeclSig {
	sigs := make([]DeclSig, len(decls))
	for i, d := range decls {
		sigs[i] = toDeclSig(d)
	}
	return sigs
}

// FuncSig is the wire form of a function signature: everything about a
// function except its statement body, which holds the Expr/Stmt interface
// values CBOR cannot decode back without a registered concrete-type tag set.
type FuncSig struct {
	Path            []string
	Generics        []string
	ReceiverDims    []int
	ReturnType      string
	ReturnRefDepth  int
	ReturnArrayDims []int
	Params          []DeclSig
	IsConditional   bool
	IsPublic        bool
	IsStatic        bool
}

func toFuncSig(f *ast.Function) FuncSig {
	return FuncSig{
		Path: f.Path, Generics: f.Generics, ReceiverDims: f.ReceiverDims,
		ReturnType: f.ReturnType, ReturnRefDepth: f.ReturnRefDepth, ReturnArrayDims: f.ReturnArrayDims,
		Params: toDeclSigs(f.Params), IsConditional: f.IsConditional, IsPublic: f.IsPublic, IsStatic: f.IsStatic,
	}
}

// TypeSig is the wire form of a class/struct declaration's shape: its
// members and method signatures, without method bodies.
type TypeSig struct {
	Path     []string
	BaseType string
	Generics []string
	Members  []DeclSig
	Methods  []FuncSig
	IsClass  bool
	IsPublic bool
}

func toTypeSig(u *ast.UserType) TypeSig {
	methods := make([]FuncSig, len(u.Methods))
	for i, m := range u.Methods {
		methods[i] = toFuncSig(m)
	}
	return TypeSig{
		Path: u.Path, BaseType: u.BaseType, Generics: u.Generics,
		Members: toDeclSigs(u.Members), Methods: methods, IsClass: u.IsClass, IsPublic: u.IsPublic,
	}
}

// Signature is the wire form of a module: everything that describes its
// public shape (imports, function/type/enum/declaration signatures) with
// statement and expression bodies omitted, since those hold interface
// values (ast.Expr, ast.Stmt) that CBOR can encode but not decode back
// without a registered concrete-type tag set. Tooling that needs full
// bodies re-parses the source text instead of deserializing it.
type Signature struct {
	Imports   []*ast.Import
	Functions []FuncSig
	UserTypes []TypeSig
	Enums     []*ast.EnumType
	Decls     []DeclSig
}

// MarshalModule serializes a module's public signature to CBOR bytes.
func MarshalModule(m *ast.Module) ([]byte, error) {
	funcs := make([]FuncSig, len(m.Functions))
	for i, f := range m.Functions {
		funcs[i] = toFuncSig(f)
	}
	types := make([]TypeSig, len(m.UserTypes))
	for i, u := range m.UserTypes {
		types[i] = toTypeSig(u)
	}
	sig := Signature{Imports: m.Imports, Functions: funcs, UserTypes: types, Enums: m.Enums, Decls: toDeclSigs(m.Decls)}
	return cborEncMode.Marshal(sig)
}

// UnmarshalModule deserializes a module signature from CBOR bytes produced
// by MarshalModule.
func UnmarshalModule(data []byte) (*Signature, error) {
	var sig Signature
	if err := cbor.Unmarshal(data, &sig); err != nil {
		return nil, fmt.Errorf("wire: unmarshal module: %w", err)
	}
	return &sig, nil
}
