// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"errors"
	"strconv"
)

var (
	// ErrTruncatedInput indicates that the input ended in the middle of an element.
	ErrTruncatedInput = errors.New("tlv: truncated input")

	// ErrMalformedStructure indicates a wrong tag, arity or content at a position
	// where a specific shape is required.
	ErrMalformedStructure = errors.New("tlv: malformed structure")

	// ErrUnsupportedEncoding indicates a valid BER construct outside the supported
	// DER subset, such as an indefinite length or a length needing more than 7 bytes.
	ErrUnsupportedEncoding = errors.New("tlv: unsupported encoding")

	// ErrDepthExceeded indicates that nested elements went deeper than the configured limit.
	ErrDepthExceeded = errors.New("tlv: maximum nesting depth exceeded")

	// ErrLengthExceeded indicates that the cumulative number of decoded bytes
	// went over the configured limit.
	ErrLengthExceeded = errors.New("tlv: maximum decoded length exceeded")

	// ErrInvalidObjectIdentifier indicates a dotted OID string that cannot be encoded.
	ErrInvalidObjectIdentifier = errors.New("tlv: invalid object identifier")
)

// SyntaxError records where in the input a decode failed. Err is always one of
// the package sentinels, so callers can use [errors.Is] on the result.
type SyntaxError struct {
	Err error // underlying sentinel

	// Offset is the position of the first header byte of the element that
	// could not be decoded.
	Offset int

	// Tag is the tag byte at Offset, or zero if no tag could be read.
	Tag Tag
}

func (e *SyntaxError) Unwrap() error { return e.Err }
func (e *SyntaxError) Error() string {
	b := []byte("tlv: syntax error")
	if e.Tag != 0 {
		b = append(b, " in "...)
		b = append(b, e.Tag.String()...)
	}
	b = strconv.AppendInt(append(b, " at offset "...), int64(e.Offset), 10)
	if e.Err != nil {
		b = append(b, ": "...)
		b = append(b, e.Err.Error()...)
	}
	return string(b)
}

// syntaxError wraps sentinel in a [SyntaxError] for the element at offset.
func syntaxError(sentinel error, offset int, tag Tag) error {
	return &SyntaxError{Err: sentinel, Offset: offset, Tag: tag}
}
