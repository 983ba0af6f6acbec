package ensime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolAt_LocalVariable(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nfunc f() {\n\tx := 1\n\t_ = x\n}\n"
	s.Intern(TextSource("a.go", src))

	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), indexOf(t, src, "x :="))
	require.NoError(t, err)
	require.NotNil(t, si)
	assert.Equal(t, "x", si.Name)
	assert.Equal(t, "x", si.LocalName)
	assert.False(t, si.IsCallable)
	assert.Equal(t, "int", si.Type.Name)
	require.NotNil(t, si.DeclPos)
	assert.Equal(t, "a.go", si.DeclPos.Path)
}

func TestSymbolAt_PackageLevelFunc(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nfunc Run() {}\n\nvar handler = Run\n"
	s.Intern(TextSource("a.go", src))

	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), indexOf(t, src, "Run\n"))
	require.NoError(t, err)
	require.NotNil(t, si)
	assert.Equal(t, "demo.Run", si.Name)
	assert.Equal(t, "Run", si.LocalName)
	assert.True(t, si.IsCallable)
}

func TestSymbolAt_MethodSelection(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\ntype Greeter struct{}\n\nfunc (g Greeter) Greet() {}\n\nfunc use(g Greeter) {\n\tg.Greet()\n}\n"
	s.Intern(TextSource("a.go", src))

	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), indexOf(t, src, "Greet()\n}"))
	require.NoError(t, err)
	require.NotNil(t, si)
	assert.Equal(t, "demo.Greeter.Greet", si.Name)
	assert.True(t, si.IsCallable)
	require.NotNil(t, si.DeclPos)
	assert.Equal(t, indexOf(t, src, "Greet() {}"), si.DeclPos.Offset)
}

func TestSymbolAt_LiteralIsNotASymbol(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nvar n = 42\n"
	s.Intern(TextSource("a.go", src))

	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), indexOf(t, src, "42"))
	require.NoError(t, err)
	assert.Nil(t, si)
}

func TestSymbolAt_UnresolvedKeepsTokenTextAndNAType(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nvar v = mystery\n"
	s.Intern(TextSource("a.go", src))

	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), indexOf(t, src, "mystery"))
	require.NoError(t, err)
	require.NotNil(t, si)
	assert.Equal(t, "mystery", si.Name)
	assert.Equal(t, TypeInfoNA, si.Type)
	assert.Nil(t, si.DeclPos)
}

func TestSymbolAt_TypeMayResolveWhereSymbolDoesNot(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nvar sum = 1 + 2\n"
	s.Intern(TextSource("a.go", src))

	offset := indexOf(t, src, " + 2")
	si, err := s.SymbolAt(context.Background(), FileSource("a.go"), offset)
	require.NoError(t, err)
	assert.Nil(t, si)

	ti, err := s.TypeAt(context.Background(), FileSource("a.go"), offset)
	require.NoError(t, err)
	assert.NotNil(t, ti)
}
