package ensime

import (
	"context"
	"go/ast"

	"github.com/myrjola/ensime-server/internal/frontend"
)

// LinkAt finds the declaration site of a fully-qualified symbol reference,
// using handle's file as compilation context. The search covers the single
// compiled unit; when an index is attached it is consulted as a cross-file
// fallback. A nil result means the reference was not found, never an error.
func (s *Session) LinkAt(ctx context.Context, fqn string, handle SourceHandle) (*SourcePosition, error) {
	unit, err := s.compiledUnitFor(ctx, handle)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		if pos := findDeclaration(unit, fqn); pos != nil {
			return pos, nil
		}
	}
	if s.idx != nil {
		locs, err := s.idx.Lookup(fqn)
		if err != nil {
			return nil, err
		}
		if len(locs) > 0 {
			loc := locs[0]
			return &SourcePosition{Path: loc.Path, Offset: loc.Offset, Line: loc.Line, Col: loc.Col}, nil
		}
	}
	return nil, nil
}

// findDeclaration scans the unit's top-level declarations for one whose
// qualified name matches fqn. A bare name matches too, so callers may pass
// either "pkg.Type.Method" or "Method".
func findDeclaration(unit *frontend.CompiledUnit, fqn string) *SourcePosition {
	for _, id := range declaredNames(unit.File) {
		if id.Name != fqn {
			obj := unit.ObjectOf(id)
			if obj == nil || fqnOf(obj) != fqn {
				continue
			}
		}
		return positionFor(unit, id.Pos())
	}
	return nil
}

// declaredNames collects the defining identifiers of a file's top-level
// declarations: functions and methods, plus type, var and const specs.
func declaredNames(file *ast.File) []*ast.Ident {
	var names []*ast.Ident
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			names = append(names, d.Name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, sp.Name)
				case *ast.ValueSpec:
					names = append(names, sp.Names...)
				}
			}
		}
	}
	return names
}
