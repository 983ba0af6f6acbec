package frontend

import (
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Task is one batch compilation over a set of units. It is single-use:
// Parse, then Analyze, then discard. Compiled output is never cached
// across tasks.
type Task struct {
	sink  Sink
	units []*CompilableUnit
	lint  string

	fset     *token.FileSet
	compiled []*CompiledUnit
}

// NewTask builds a compilation task over units, routing diagnostics to sink.
// The lint category selects which soft findings are promoted to mandatory
// warnings; see Analyze.
func NewTask(sink Sink, units []*CompilableUnit, lint string) *Task {
	return &Task{
		sink:  sink,
		units: units,
		lint:  lint,
		fset:  token.NewFileSet(),
	}
}

// Parse reads and parses every unit. Units that cannot be read or parsed
// emit fatal diagnostics and are dropped from the batch; the rest of the
// batch still parses. The returned units have syntax but no type
// information until Analyze runs.
//
// Parsing runs on a bounded worker pool, but diagnostics are replayed in
// unit order afterwards so delivery order stays deterministic.
func (t *Task) Parse(ctx context.Context) ([]*CompiledUnit, error) {
	type parsed struct {
		unit  *CompiledUnit
		diags []Diagnostic
	}
	results := make([]parsed, len(t.units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, cu := range t.units {
		i, cu := i, cu
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := cu.Content()
			if err != nil {
				results[i].diags = append(results[i].diags, Diagnostic{
					Path:    cu.Path,
					Kind:    KindFatal,
					Message: err.Error(),
					Start:   -1,
					End:     -1,
					Line:    1,
					Col:     1,
				})
				return nil
			}
			file, perr := parser.ParseFile(t.fset, cu.Path, src, parser.ParseComments|parser.AllErrors)
			if perr != nil {
				results[i].diags = append(results[i].diags, t.parseDiagnostics(cu.Path, perr)...)
			}
			if file == nil {
				return nil
			}
			results[i].unit = &CompiledUnit{
				Path: cu.Path,
				Src:  src,
				File: file,
				Fset: t.fset,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.compiled = t.compiled[:0]
	for _, r := range results {
		for _, d := range r.diags {
			t.sink.Diag(d)
		}
		if r.unit != nil {
			t.compiled = append(t.compiled, r.unit)
		}
	}
	return t.compiled, nil
}

// parseDiagnostics converts a parser error into fatal diagnostics.
func (t *Task) parseDiagnostics(path string, err error) []Diagnostic {
	list, ok := err.(scanner.ErrorList)
	if !ok {
		return []Diagnostic{{
			Path: path, Kind: KindFatal, Message: err.Error(),
			Start: -1, End: -1, Line: 1, Col: 1,
		}}
	}
	diags := make([]Diagnostic, 0, len(list))
	for _, e := range list {
		diags = append(diags, Diagnostic{
			Path:    path,
			Kind:    KindFatal,
			Message: e.Msg,
			Start:   -1,
			End:     -1,
			Pos:     e.Pos.Offset,
			Line:    e.Pos.Line,
			Col:     e.Pos.Column,
		})
	}
	return diags
}

// Analyze type-checks every parsed unit as a single package so cross-file
// references resolve. Type errors flow to the sink as they are found; a
// checker error never aborts the batch, it only marks the affected
// declarations. The parsed units are returned with type information
// attached.
func (t *Task) Analyze(ctx context.Context) ([]*CompiledUnit, error) {
	if len(t.compiled) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}
	conf := types.Config{
		Error:    func(err error) { t.sink.Diag(t.typeDiagnostic(err)) },
		Importer: importer.Default(),
	}

	files := make([]*ast.File, len(t.compiled))
	for i, u := range t.compiled {
		files[i] = u.File
	}

	pkgPath := files[0].Name.Name
	if pkgPath == "" {
		pkgPath = "unknown"
	}

	// The checker reports every error through conf.Error and additionally
	// returns the first one; the returned error carries no information the
	// sink has not already seen.
	pkg, _ := conf.Check(pkgPath, t.fset, files, info)

	for _, u := range t.compiled {
		u.Info = info
		u.Pkg = pkg
	}
	return t.compiled, nil
}

// typeDiagnostic converts a checker error into a raw diagnostic. Soft
// errors (unused variables and the like) are warnings; when a lint
// category is set they are promoted to mandatory warnings.
func (t *Task) typeDiagnostic(err error) Diagnostic {
	te, ok := err.(types.Error)
	if !ok {
		return Diagnostic{Kind: KindFatal, Message: err.Error(), Start: -1, End: -1, Line: 1, Col: 1}
	}
	pos := te.Fset.Position(te.Pos)
	kind := KindFatal
	if te.Soft {
		kind = KindWarning
		if t.lint != "" {
			kind = KindMandatoryWarning
		}
	}
	return Diagnostic{
		Path:    pos.Filename,
		Kind:    kind,
		Message: te.Msg,
		Start:   -1,
		End:     -1,
		Pos:     pos.Offset,
		Line:    pos.Line,
		Col:     pos.Column,
	}
}
