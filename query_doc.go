package ensime

import (
	"context"
	"go/types"
)

// DocSignatureAt derives the documentation signature for the symbol at
// offset. Preconditions match SymbolAt: only identifier and member-selection
// nodes that resolve to an object yield a result.
func (s *Session) DocSignatureAt(ctx context.Context, handle SourceHandle, offset int) (*DocSignature, error) {
	unit, err := s.compiledUnitFor(ctx, handle)
	if err != nil || unit == nil {
		return nil, err
	}
	id := identAt(unit, offset)
	if id == nil {
		return nil, nil
	}
	obj := unit.ObjectOf(id)
	if obj == nil {
		return nil, nil
	}

	sig := DocSignature{
		Symbol:    obj.Name(),
		Signature: types.ObjectString(obj, func(p *types.Package) string { return p.Name() }),
	}
	if pkg := obj.Pkg(); pkg != nil {
		sig.Package = pkg.Path()
	}
	// Methods document under their receiver type.
	if fn, ok := obj.Type().(*types.Signature); ok && fn.Recv() != nil {
		if named, ok := recvNamed(fn.Recv().Type()); ok {
			sig.Symbol = named.Obj().Name()
			sig.Member = obj.Name()
		}
	}
	return &sig, nil
}
