package node

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssbag/style"
)

// Styled mirrors Node with the raw style replaced by the resolved bag.
type Styled struct {
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text,omitempty"`
	Src      string    `json:"src,omitempty"`
	Style    style.Bag `json:"style,omitempty"`
	Children []*Styled `json:"children,omitempty"`
}

// Resolver resolves the styles of a whole tree.
type Resolver struct {
	log    *zap.Logger
	styles *style.Resolver
}

// NewResolver returns a Resolver logging through log, which may be nil.
func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log.Named("node"), styles: style.NewResolver(log)}
}

// Resolve walks the tree depth-first and resolves every node's style.
// Failures do not stop the walk; they are collected per node path and the
// returned tree is complete with the failing properties omitted.
func (r *Resolver) Resolve(n *Node) (*Styled, error) {
	if n == nil {
		return nil, nil
	}
	var errs error
	out := r.resolve(n, "root", &errs)
	return out, errs
}

func (r *Resolver) resolve(n *Node, path string, errs *error) *Styled {
	out := &Styled{Kind: n.Kind, Text: n.Text, Src: n.Src}

	raw, err := r.styleMap(n.Style)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", path, err))
	} else {
		bag, err := r.styles.Resolve(raw)
		if err != nil {
			*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", path, err))
		}
		out.Style = bag
	}

	for i, child := range n.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, r.resolve(child, fmt.Sprintf("%s.children[%d]", path, i), errs))
	}
	return out
}

// styleMap coerces the raw style field into the property map the style
// resolver consumes. Declaration strings go through the CSS lexer; maps are
// used as-is, with YAML's loose key typing normalized away.
func (r *Resolver) styleMap(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return r.styles.ParseDeclarations([]byte(t)), nil
	case map[string]any:
		return t, nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string style key %v", ErrInvalidNode, k)
			}
			m[ks] = val
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: style must be a map or a declaration string, got %T", ErrInvalidNode, v)
	}
}
