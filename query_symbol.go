package ensime

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/myrjola/ensime-server/internal/frontend"
)

// SymbolAt resolves the symbol referenced at offset. Only identifier and
// member-selection nodes yield a result; statements, literals and operators
// are not symbols and return nil. The result's name is fully qualified when
// the reference resolves, the raw token text otherwise, and its type falls
// back to the NA sentinel for unresolved references.
func (s *Session) SymbolAt(ctx context.Context, handle SourceHandle, offset int) (*SymbolInfo, error) {
	unit, err := s.compiledUnitFor(ctx, handle)
	if err != nil || unit == nil {
		return nil, err
	}
	id := identAt(unit, offset)
	if id == nil {
		return nil, nil
	}

	info := SymbolInfo{Name: id.Name, LocalName: id.Name, Type: TypeInfoNA}
	obj := unit.ObjectOf(id)
	if obj == nil {
		return &info, nil
	}
	if fqn := fqnOf(obj); fqn != "" {
		info.Name = fqn
	}
	if obj.Pos() != token.NoPos {
		info.DeclPos = positionFor(unit, obj.Pos())
	}
	if t := obj.Type(); t != nil {
		info.Type = typeInfoFor(t)
		info.IsCallable = info.Type.Callable
	}
	return &info, nil
}

// identAt returns the identifier at offset, looking through a member
// selection to its selected name. Nil when the leaf node is neither.
func identAt(unit *frontend.CompiledUnit, offset int) *ast.Ident {
	path := unit.PathAt(offset)
	if len(path) == 0 {
		return nil
	}
	switch n := path[0].(type) {
	case *ast.Ident:
		return n
	case *ast.SelectorExpr:
		return n.Sel
	}
	return nil
}

// fqnOf renders an object's fully-qualified name: package path plus name
// for package-level objects, with the receiver type interposed for methods.
// Objects without a package (locals, universe names) keep their plain name.
func fqnOf(obj types.Object) string {
	if obj == nil {
		return ""
	}
	pkg := obj.Pkg()
	if pkg == nil {
		return obj.Name()
	}
	if sig, ok := obj.Type().(*types.Signature); ok && sig.Recv() != nil {
		if named, ok := recvNamed(sig.Recv().Type()); ok {
			return pkg.Path() + "." + named.Obj().Name() + "." + obj.Name()
		}
	}
	if obj.Parent() == pkg.Scope() {
		return pkg.Path() + "." + obj.Name()
	}
	return obj.Name()
}

// recvNamed unwraps a method receiver type down to its named type.
func recvNamed(t types.Type) (*types.Named, bool) {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	return named, ok
}

// positionFor converts a token position into a detached SourcePosition.
func positionFor(unit *frontend.CompiledUnit, pos token.Pos) *SourcePosition {
	p := unit.PositionFor(pos)
	return &SourcePosition{Path: p.Filename, Offset: p.Offset, Line: p.Line, Col: p.Column}
}
