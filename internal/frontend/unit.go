package frontend

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"
)

// CompiledUnit is the result of compiling one file within a batch: syntax,
// type information, and the positioning context needed to resolve offsets.
// It is only valid for the lifetime of the query that requested it.
type CompiledUnit struct {
	Path string
	Src  []byte
	File *ast.File
	Fset *token.FileSet

	// Info and Pkg are shared across the batch and nil until Analyze runs.
	Info *types.Info
	Pkg  *types.Package
}

// tokenFile returns the token.File positioning the unit, or nil when the
// unit was never registered with the file set.
func (u *CompiledUnit) tokenFile() *token.File {
	return u.Fset.File(u.File.Pos())
}

// PosAt converts a byte offset into a token position. Returns token.NoPos
// for offsets outside the file.
func (u *CompiledUnit) PosAt(offset int) token.Pos {
	tf := u.tokenFile()
	if tf == nil || offset < 0 || offset > tf.Size() {
		return token.NoPos
	}
	return tf.Pos(offset)
}

// PathAt resolves the syntactic path enclosing the given byte offset,
// innermost node first. A nil path means the offset is outside the file.
func (u *CompiledUnit) PathAt(offset int) []ast.Node {
	pos := u.PosAt(offset)
	if pos == token.NoPos {
		return nil
	}
	path, _ := astutil.PathEnclosingInterval(u.File, pos, pos)
	return path
}

// TypeOf returns the type bound to an expression, or nil when the checker
// recorded none.
func (u *CompiledUnit) TypeOf(e ast.Expr) types.Type {
	if u.Info == nil {
		return nil
	}
	return u.Info.TypeOf(e)
}

// ObjectOf returns the object an identifier denotes or defines, or nil.
func (u *CompiledUnit) ObjectOf(id *ast.Ident) types.Object {
	if u.Info == nil {
		return nil
	}
	return u.Info.ObjectOf(id)
}

// ScopeAt returns the innermost lexical scope containing the offset, or nil
// when no scope information is available there.
func (u *CompiledUnit) ScopeAt(offset int) *types.Scope {
	if u.Pkg == nil {
		return nil
	}
	pos := u.PosAt(offset)
	if pos == token.NoPos {
		return nil
	}
	return u.Pkg.Scope().Innermost(pos)
}

// PositionFor converts a token position into its file/offset/line/column
// view.
func (u *CompiledUnit) PositionFor(pos token.Pos) token.Position {
	return u.Fset.Position(pos)
}
