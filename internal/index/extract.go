package index

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// extract parses src with tree-sitter and collects the file's top-level
// declarations: functions, methods, types, vars and consts.
func extract(ctx context.Context, src []byte) ([]Symbol, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("index: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	pkg := packageName(root, src)

	var symbols []Symbol
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "function_declaration":
			if name := node.ChildByFieldName("name"); name != nil {
				symbols = append(symbols, symbolAt(name, src, "function", pkg+"."+name.Content(src)))
			}
		case "method_declaration":
			name := node.ChildByFieldName("name")
			if name == nil {
				continue
			}
			fqn := pkg + "." + name.Content(src)
			if recv := receiverType(node, src); recv != "" {
				fqn = pkg + "." + recv + "." + name.Content(src)
			}
			symbols = append(symbols, symbolAt(name, src, "method", fqn))
		case "type_declaration":
			symbols = append(symbols, specNames(node, src, "type_spec", "type", pkg)...)
		case "var_declaration":
			symbols = append(symbols, specNames(node, src, "var_spec", "var", pkg)...)
		case "const_declaration":
			symbols = append(symbols, specNames(node, src, "const_spec", "const", pkg)...)
		}
	}
	return symbols, nil
}

// packageName reads the package clause's identifier, or "" when missing.
func packageName(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		if node.Type() != "package_clause" {
			continue
		}
		for j := 0; j < int(node.NamedChildCount()); j++ {
			if c := node.NamedChild(j); c.Type() == "package_identifier" {
				return c.Content(src)
			}
		}
	}
	return ""
}

// receiverType extracts a method's receiver type name, pointer stripped.
func receiverType(node *sitter.Node, src []byte) string {
	recv := node.ChildByFieldName("receiver")
	if recv == nil || recv.NamedChildCount() == 0 {
		return ""
	}
	decl := recv.NamedChild(0)
	t := decl.ChildByFieldName("type")
	if t == nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(t.Content(src)), "*")
}

// specNames collects the declared names inside a type/var/const declaration.
func specNames(node *sitter.Node, src []byte, specType, kind, pkg string) []Symbol {
	var symbols []Symbol
	for i := 0; i < int(node.NamedChildCount()); i++ {
		spec := node.NamedChild(i)
		if spec.Type() != specType {
			continue
		}
		if name := spec.ChildByFieldName("name"); name != nil {
			symbols = append(symbols, symbolAt(name, src, kind, pkg+"."+name.Content(src)))
		}
	}
	return symbols
}

// symbolAt builds a Symbol positioned at the declaring identifier.
// Tree-sitter rows and columns are 0-based; stored lines and columns are
// 1-based.
func symbolAt(name *sitter.Node, src []byte, kind, fqn string) Symbol {
	point := name.StartPoint()
	return Symbol{
		Name:   name.Content(src),
		FQN:    fqn,
		Kind:   kind,
		Line:   int(point.Row) + 1,
		Col:    int(point.Column) + 1,
		Offset: int(name.StartByte()),
	}
}
