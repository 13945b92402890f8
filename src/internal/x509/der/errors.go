// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"errors"
	"fmt"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

var (
	// ErrTruncatedInput indicates that the input ended in the middle of an element.
	ErrTruncatedInput = tlv.ErrTruncatedInput

	// ErrMalformedStructure indicates a wrong tag or arity at a mandatory position.
	ErrMalformedStructure = tlv.ErrMalformedStructure

	// ErrUnsupportedEncoding indicates a length form needing more than 7 bytes
	// or another construct outside DER.
	ErrUnsupportedEncoding = tlv.ErrUnsupportedEncoding

	// ErrDepthExceeded indicates that nesting went past [Limits.MaxDepth].
	ErrDepthExceeded = tlv.ErrDepthExceeded

	// ErrLengthExceeded indicates that the cumulative decoded length went past
	// [Limits.MaxTotalLength].
	ErrLengthExceeded = tlv.ErrLengthExceeded
)

// DecodeError reports which certificate field could not be decoded.
type DecodeError struct {
	Field string // e.g. "serialNumber", "issuer", "extension basicConstraints"
	Err   error
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Error() string {
	return "x509der: decoding " + e.Field + ": " + e.Err.Error()
}

// fieldErr attaches the field name to err unless it already carries one.
func fieldErr(field string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Field: field, Err: err}
}

// wrongTag reports an element whose tag does not match the required one.
func wrongTag(field string, want, got tlv.Tag) error {
	return &DecodeError{
		Field: field,
		Err:   fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, want, got),
	}
}

// isLimit reports whether err came from a resource limit. Limit errors are
// never absorbed by the lenient code paths.
func isLimit(err error) bool {
	return errors.Is(err, ErrDepthExceeded) || errors.Is(err, ErrLengthExceeded)
}
