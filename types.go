package ensime

// Result value objects for the point queries. All of them are plain values:
// none retains a reference into compiler-internal state, so they stay valid
// after the compile that produced them is discarded.

// SourcePosition is a resolved location in a source file. Offset is a byte
// offset; Line and Col are 1-based.
type SourcePosition struct {
	Path   string
	Offset int
	Line   int
	Col    int
}

// TypeInfo describes the type bound to a point in a source file.
type TypeInfo struct {
	// Name is the type's short rendering, FullName the package-qualified one.
	Name     string
	FullName string
	// Callable reports whether the type is a function or method signature
	// rather than a value type.
	Callable bool
}

// TypeInfoNA is the sentinel returned when a symbol resolves but its type
// does not.
var TypeInfoNA = TypeInfo{Name: "NA", FullName: "NA"}

// SymbolInfo describes the symbol referenced at a point.
type SymbolInfo struct {
	// Name is the fully-qualified name when resolvable, the raw token text
	// otherwise. LocalName is always the raw token text.
	Name      string
	LocalName string
	// DeclPos is the best-effort declaration site; nil when unknown.
	DeclPos *SourcePosition
	// Type is the bound type, TypeInfoNA when unresolved.
	Type TypeInfo
	// IsCallable reports whether the bound type is itself executable.
	IsCallable bool
}

// CompletionCandidate is one completion suggestion.
type CompletionCandidate struct {
	Name string
	// TypeSig is the candidate's type rendering, empty when unknown.
	TypeSig    string
	IsCallable bool
}

// DocSignature keys a documentation lookup for the symbol at a point.
type DocSignature struct {
	// Package is the defining package's path, Symbol the top-level name.
	// Member is set for methods and fields, empty otherwise.
	Package string
	Symbol  string
	Member  string
	// Signature is the full rendered declaration.
	Signature string
}

// FQN renders the signature's fully-qualified name.
func (d DocSignature) FQN() string {
	fqn := d.Symbol
	if d.Package != "" {
		fqn = d.Package + "." + fqn
	}
	if d.Member != "" {
		fqn += "." + d.Member
	}
	return fqn
}

// ImplicitInfo is a diagnostic-derived annotation at a point, labeled with
// the originating diagnostic's severity and message.
type ImplicitInfo struct {
	Severity Severity
	Message  string
	Start    int
	End      int
}
