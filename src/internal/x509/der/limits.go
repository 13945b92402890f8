// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"fmt"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

// Limits bounds the resources a single decode may use. A zero field means
// no limit for that dimension.
type Limits struct {
	// MaxDepth is the deepest nesting of constructed elements the decoder
	// will descend into. A certificate needs about 8.
	MaxDepth int `json:"maxDepth" yaml:"maxDepth"`

	// MaxTotalLength caps the sum of the encoded lengths of every element
	// decoded, including elements re-parsed from extension payloads.
	MaxTotalLength int `json:"maxTotalLength" yaml:"maxTotalLength"`
}

// DefaultLimits returns the limits used by [Decode] and [DecodeAll].
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:       32,
		MaxTotalLength: 16 << 20,
	}
}

// walker holds the per-call state of one certificate decode.
type walker struct {
	limits   Limits
	depth    int
	consumed int
}

// enter descends one nesting level. On failure the level is not kept, so
// callers only defer leave after a successful enter.
func (w *walker) enter() error {
	w.depth++
	if w.limits.MaxDepth > 0 && w.depth > w.limits.MaxDepth {
		w.depth--
		return fmt.Errorf("%w: %d", ErrDepthExceeded, w.limits.MaxDepth)
	}
	return nil
}

func (w *walker) leave() { w.depth-- }

// decodeAt charges the length of one element against the budget and only
// then decodes it, so an oversized element is rejected before its content
// is copied.
func (w *walker) decodeAt(data []byte, off int) (tlv.Element, tlv.Span, error) {
	span, err := tlv.Peek(data, off)
	if err != nil {
		return tlv.Element{}, tlv.Span{}, err
	}
	w.consumed += span.Len()
	if w.limits.MaxTotalLength > 0 && w.consumed > w.limits.MaxTotalLength {
		return tlv.Element{}, tlv.Span{}, fmt.Errorf("%w: %d bytes", ErrLengthExceeded, w.limits.MaxTotalLength)
	}
	return tlv.DecodeAt(data, off)
}

// members decodes every element inside the content of e.
func (w *walker) members(e tlv.Element) ([]tlv.Element, error) {
	content := e.Value()
	var out []tlv.Element
	for off := 0; off < len(content); {
		m, span, err := w.decodeAt(content, off)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
		off = span.End
	}
	return out, nil
}

// inner decodes the first element inside the content of e.
func (w *walker) inner(e tlv.Element) (tlv.Element, error) {
	m, _, err := w.decodeAt(e.Value(), 0)
	return m, err
}
