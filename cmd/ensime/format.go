package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	ensime "github.com/myrjola/ensime-server"
)

// validateFormat rejects unknown --format values up front.
func validateFormat(format string) error {
	switch format {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("invalid format %q: must be json or text", format)
}

// printResult renders a single query result. A nil result prints as
// "no result" in text mode and null in json mode.
func printResult(w io.Writer, format string, result any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	switch r := result.(type) {
	case *ensime.TypeInfo:
		if r == nil {
			break
		}
		fmt.Fprintf(w, "%s (%s)\n", r.Name, r.FullName)
		return nil
	case *ensime.SymbolInfo:
		if r == nil {
			break
		}
		fmt.Fprintf(w, "%s: %s", r.Name, r.Type.Name)
		if r.DeclPos != nil {
			fmt.Fprintf(w, " declared at %s:%d:%d", r.DeclPos.Path, r.DeclPos.Line, r.DeclPos.Col)
		}
		fmt.Fprintln(w)
		return nil
	case *ensime.DocSignature:
		if r == nil {
			break
		}
		fmt.Fprintf(w, "%s\n%s\n", r.FQN(), r.Signature)
		return nil
	case *ensime.SourcePosition:
		if r == nil {
			break
		}
		fmt.Fprintf(w, "%s:%d:%d\n", r.Path, r.Line, r.Col)
		return nil
	}
	fmt.Fprintln(w, "no result")
	return nil
}

// printCandidates renders completion candidates as aligned columns.
func printCandidates(w io.Writer, format string, cands []ensime.CompletionCandidate) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cands)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE")
	for _, c := range cands {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.TypeSig)
	}
	return tw.Flush()
}

// printImplicit renders diagnostic-derived info records.
func printImplicit(w io.Writer, format string, infos []ensime.ImplicitInfo) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	for _, info := range infos {
		fmt.Fprintf(w, "[%s] %d-%d %s\n", info.Severity, info.Start, info.End, info.Message)
	}
	return nil
}

// printNote renders one compiler note.
func printNote(w io.Writer, format string, note ensime.Note) {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.Encode(note)
		return
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", note.Source, note.Line, note.Col, note.Severity, note.Message)
}
