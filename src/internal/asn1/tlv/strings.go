// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Text decodes a character string element according to its tag: UTF8String
// as UTF-8 and PrintableString, TeletexString, IA5String and VisibleString
// as Latin-1. Other tags fail with [ErrMalformedStructure].
//
// TeletexString is formally T.61, but certificates in the wild put Latin-1
// in it, so it is read as such.
func (e Element) Text() (string, error) {
	switch e.tag {
	case TagUTF8String:
		return e.UTF8(), nil
	case TagPrintableString, TagTeletexString, TagIA5String, TagVisibleString:
		return e.Latin1(), nil
	}
	return "", fmt.Errorf("%w: %s is not a character string", ErrMalformedStructure, e.tag)
}

// UTF8 interprets the content of e as UTF-8 regardless of tag. Invalid
// sequences are replaced with U+FFFD.
func (e Element) UTF8() string {
	return strings.ToValidUTF8(string(e.value), "�")
}

// Latin1 interprets the content of e as ISO 8859-1 regardless of tag.
func (e Element) Latin1() string {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(e.value)
	if err != nil {
		// unreachable: ISO 8859-1 maps every byte
		return string(e.value)
	}
	return string(out)
}
