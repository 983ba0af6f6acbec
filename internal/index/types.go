package index

// Symbol is one extracted declaration.
type Symbol struct {
	Name string
	// FQN is package.Name, with the receiver type interposed for methods.
	FQN    string
	Kind   string
	Line   int
	Col    int
	Offset int
}

// Location is a declaration site as returned by lookups. Line and Col are
// 1-based, Offset is a byte offset.
type Location struct {
	Path   string
	Line   int
	Col    int
	Offset int
}
