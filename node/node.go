// Package node holds the wire model of a renderable tree: containers, text
// and images, each carrying a raw style that resolves to a canonical bag.
package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKind = errors.New("unknown node kind")
	ErrInvalidNode = errors.New("invalid node")
)

// Kind discriminates the node variants.
type Kind string

const (
	Container Kind = "container"
	Text      Kind = "text"
	Image     Kind = "image"
)

// Node is one element of the input tree. Style is either a raw property map
// or an inline declaration string ("width: 10px; color: red").
type Node struct {
	Kind     Kind    `json:"kind" yaml:"kind"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Src      string  `json:"src,omitempty" yaml:"src,omitempty"`
	Style    any     `json:"style,omitempty" yaml:"style,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// DecodeJSON reads a node tree from JSON.
func DecodeJSON(data []byte) (*Node, error) {
	var n Node
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("decoding node tree: %w", err)
	}
	return &n, nil
}

// DecodeYAML reads a node tree from YAML.
func DecodeYAML(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decoding node tree: %w", err)
	}
	return &n, nil
}

// Decode sniffs the format: documents starting with '{' are JSON, everything
// else goes through the YAML decoder (which accepts JSON anyway).
func Decode(data []byte) (*Node, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// Validate walks the tree and reports every structural problem, each
// prefixed with the path of the offending node.
func (n *Node) Validate() error {
	return n.validate("root")
}

func (n *Node) validate(path string) error {
	var errs error

	switch n.Kind {
	case Container:
	case Text:
		if len(n.Children) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: text node has children", ErrInvalidNode, path))
		}
	case Image:
		if n.Src == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: image node without src", ErrInvalidNode, path))
		}
		if len(n.Children) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: image node has children", ErrInvalidNode, path))
		}
	case "":
		errs = multierr.Append(errs, fmt.Errorf("%w: %s: missing kind", ErrUnknownKind, path))
	default:
		errs = multierr.Append(errs, fmt.Errorf("%w: %s: %q", ErrUnknownKind, path, n.Kind))
	}

	for i, child := range n.Children {
		if child == nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s.children[%d]: null node", ErrInvalidNode, path, i))
			continue
		}
		errs = multierr.Append(errs, child.validate(fmt.Sprintf("%s.children[%d]", path, i)))
	}
	return errs
}
