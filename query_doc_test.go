package ensime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocSignatureAt_Method(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\ntype Greeter struct{}\n\nfunc (g Greeter) Greet() string { return \"\" }\n"
	s.Intern(TextSource("a.go", src))

	sig, err := s.DocSignatureAt(context.Background(), FileSource("a.go"), indexOf(t, src, "Greet()"))
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, "demo", sig.Package)
	assert.Equal(t, "Greeter", sig.Symbol)
	assert.Equal(t, "Greet", sig.Member)
	assert.Equal(t, "demo.Greeter.Greet", sig.FQN())
	assert.Contains(t, sig.Signature, "Greet")
}

func TestDocSignatureAt_PackageLevelFunc(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nfunc Run(n int) error { return nil }\n"
	s.Intern(TextSource("a.go", src))

	sig, err := s.DocSignatureAt(context.Background(), FileSource("a.go"), indexOf(t, src, "Run"))
	require.NoError(t, err)
	require.NotNil(t, sig)
	assert.Equal(t, "demo", sig.Package)
	assert.Equal(t, "Run", sig.Symbol)
	assert.Empty(t, sig.Member)
	assert.Equal(t, "demo.Run", sig.FQN())
}

func TestDocSignatureAt_SamePreconditionsAsSymbolAt(t *testing.T) {
	s := newTestSession(t, nil)
	src := "package demo\n\nvar n = 42\n"
	s.Intern(TextSource("a.go", src))

	sig, err := s.DocSignatureAt(context.Background(), FileSource("a.go"), indexOf(t, src, "42"))
	require.NoError(t, err)
	assert.Nil(t, sig)
}
