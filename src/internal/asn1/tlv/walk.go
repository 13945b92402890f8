// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

// Node is one element of a decoded TLV tree. Constructed elements carry
// their decoded Children; primitive ones carry their Element.
type Node struct {
	Span     Span    `json:"span" yaml:"span"`
	Depth    int     `json:"depth" yaml:"depth"`
	Element  Element `json:"-" yaml:"-"`
	Children []Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Walk decodes every element in data into a tree, descending into
// constructed elements. Offsets in each [Span] are relative to data.
//
// Nesting deeper than maxDepth fails with [ErrDepthExceeded]; a maxDepth of
// zero or less means no limit.
func Walk(data []byte, maxDepth int) ([]Node, error) {
	return walk(data, 0, len(data), 0, maxDepth)
}

func walk(data []byte, start, end, depth, maxDepth int) ([]Node, error) {
	if maxDepth > 0 && depth >= maxDepth {
		return nil, syntaxError(ErrDepthExceeded, start, 0)
	}

	var nodes []Node
	window := data[:end]
	for off := start; off < end; {
		e, span, err := DecodeAt(window, off)
		if err != nil {
			return nil, err
		}
		n := Node{Span: span, Depth: depth, Element: e}
		if e.tag.Constructed() && span.End > span.ContentStart() {
			n.Children, err = walk(data, span.ContentStart(), span.End, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, n)
		off = span.End
	}
	return nodes, nil
}
