package ensime

import (
	"context"
	"go/ast"
	"go/types"
)

// TypeAt resolves the type bound to the syntactic node at offset. A nil
// result means the offset has no path or its node carries no type (inside
// whitespace, or on a keyword with no semantic binding); that is a miss,
// never an error.
func (s *Session) TypeAt(ctx context.Context, handle SourceHandle, offset int) (*TypeInfo, error) {
	unit, err := s.compiledUnitFor(ctx, handle)
	if err != nil || unit == nil {
		return nil, err
	}
	path := unit.PathAt(offset)
	if len(path) == 0 {
		return nil, nil
	}
	expr, ok := path[0].(ast.Expr)
	if !ok {
		return nil, nil
	}
	t := unit.TypeOf(expr)
	if t == nil {
		return nil, nil
	}
	info := typeInfoFor(t)
	return &info, nil
}

// typeInfoFor renders a checker type as a TypeInfo value, detached from the
// checker's state.
func typeInfoFor(t types.Type) TypeInfo {
	if t == nil {
		return TypeInfoNA
	}
	_, callable := t.Underlying().(*types.Signature)
	return TypeInfo{
		Name:     types.TypeString(t, func(p *types.Package) string { return p.Name() }),
		FullName: t.String(),
		Callable: callable,
	}
}
