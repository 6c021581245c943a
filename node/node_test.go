package node_test

import (
	"errors"
	"strings"
	"testing"

	"cssbag/node"
	"cssbag/style"
)

const jsonTree = `{
  "kind": "container",
  "style": {"display": "flex", "padding": "4px 8px"},
  "children": [
    {"kind": "text", "text": "hello", "style": {"font_size": 16, "color": "#ff0000"}},
    {"kind": "image", "src": "logo.png", "style": {"width": "50%"}}
  ]
}`

func TestDecodeAndResolveJSON(t *testing.T) {
	n, err := node.DecodeJSON([]byte(jsonTree))
	if err != nil {
		t.Fatal(err)
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	styled, err := node.NewResolver(nil).Resolve(n)
	if err != nil {
		t.Fatal(err)
	}

	if styled.Style["display"] != style.DisplayFlex {
		t.Errorf("display = %v", styled.Style["display"])
	}
	want := style.Sides{Top: style.Px(4), Right: style.Px(8), Bottom: style.Px(4), Left: style.Px(8)}
	if styled.Style["padding"] != want {
		t.Errorf("padding = %+v", styled.Style["padding"])
	}

	if len(styled.Children) != 2 {
		t.Fatalf("got %d children", len(styled.Children))
	}
	text := styled.Children[0]
	if text.Text != "hello" || text.Style["font_size"] != style.Px(16) {
		t.Errorf("text child = %+v", text)
	}
	if text.Style["color"] != style.PackedColor(0xff0000) {
		t.Errorf("text color = %v", text.Style["color"])
	}
	img := styled.Children[1]
	if img.Src != "logo.png" || img.Style["width"] != style.Percent(50) {
		t.Errorf("image child = %+v", img)
	}
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`
kind: container
style:
  gap: 10px
children:
  - kind: text
    text: hi
`)
	n, err := node.DecodeYAML(data)
	if err != nil {
		t.Fatal(err)
	}
	styled, err := node.NewResolver(nil).Resolve(n)
	if err != nil {
		t.Fatal(err)
	}
	if styled.Style["gap"] != (style.Gap{Row: style.Px(10), Column: style.Px(10)}) {
		t.Errorf("gap = %+v", styled.Style["gap"])
	}
}

func TestDecode_Sniffing(t *testing.T) {
	if _, err := node.Decode([]byte(`{"kind": "container"}`)); err != nil {
		t.Errorf("JSON: %v", err)
	}
	if _, err := node.Decode([]byte("kind: container\n")); err != nil {
		t.Errorf("YAML: %v", err)
	}
}

func TestDeclarationStringStyle(t *testing.T) {
	n := &node.Node{Kind: node.Text, Text: "x", Style: "width: 10px; color: red"}

	styled, err := node.NewResolver(nil).Resolve(n)
	if err != nil {
		t.Fatal(err)
	}
	if styled.Style["width"] != style.Px(10) {
		t.Errorf("width = %v", styled.Style["width"])
	}
	if styled.Style["color"] != style.PackedColor(0xff0000) {
		t.Errorf("color = %v", styled.Style["color"])
	}
}

func TestValidate(t *testing.T) {
	tree := &node.Node{
		Kind: node.Container,
		Children: []*node.Node{
			{Kind: node.Image},
			{Kind: "blob"},
			{Kind: node.Text, Children: []*node.Node{{Kind: node.Text}}},
		},
	}
	err := tree.Validate()
	if !errors.Is(err, node.ErrInvalidNode) {
		t.Errorf("expected ErrInvalidNode, got %v", err)
	}
	if !errors.Is(err, node.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if !strings.Contains(err.Error(), "root.children[1]") {
		t.Errorf("error should carry node paths: %v", err)
	}
}

func TestResolve_ErrorPaths(t *testing.T) {
	tree := &node.Node{
		Kind: node.Container,
		Children: []*node.Node{
			{Kind: node.Text, Text: "x", Style: map[string]any{"color": "nope"}},
		},
	}
	styled, err := node.NewResolver(nil).Resolve(tree)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "root.children[0]") {
		t.Errorf("error should name the failing node: %v", err)
	}
	// the walk still produces the full tree
	if len(styled.Children) != 1 || styled.Children[0].Text != "x" {
		t.Errorf("tree incomplete: %+v", styled)
	}
}
