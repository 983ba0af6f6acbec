package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ensime "github.com/myrjola/ensime-server"
)

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("xml"))
}

func TestParseOffsetArg(t *testing.T) {
	n, err := parseOffsetArg("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = parseOffsetArg("-1")
	assert.Error(t, err)
	_, err = parseOffsetArg("x")
	assert.Error(t, err)
}

func TestPrintResult_NilIsNoResult(t *testing.T) {
	var buf bytes.Buffer
	var ti *ensime.TypeInfo
	require.NoError(t, printResult(&buf, "text", ti))
	assert.Equal(t, "no result\n", buf.String())
}

func TestPrintResult_TypeInfoText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, "text", &ensime.TypeInfo{Name: "int", FullName: "int"}))
	assert.Equal(t, "int (int)\n", buf.String())
}

func TestPrintNote_Text(t *testing.T) {
	var buf bytes.Buffer
	printNote(&buf, "text", ensime.Note{
		Source: "a.go", Message: "boom", Severity: ensime.SeverityError, Line: 2, Col: 5,
	})
	assert.Equal(t, "a.go:2:5: error: boom\n", buf.String())
}

func TestGoFilesUnder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("no"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "testdata"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testdata", "c.go"), []byte("package y\n"), 0o644))

	paths, err := goFilesUnder(dir)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "a.go"), paths[0])
}
