// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import "fmt"

// FromUnsignedInteger returns an INTEGER holding v. The first content byte
// always has its top bit clear, so 128 encodes as 00 80 and 0 as a single 00.
func FromUnsignedInteger(v uint64) Element {
	var rev []byte
	for v > 127 {
		rev = append(rev, byte(v&0xff))
		v >>= 8
	}
	rev = append(rev, byte(v&0x7f))

	out := make([]byte, len(rev))
	for i, b := range rev {
		out[len(rev)-1-i] = b
	}
	return Element{tag: TagInteger, value: out}
}

// Uint64 returns the value of a non-negative INTEGER.
//
// It fails with [ErrMalformedStructure] if e is not an INTEGER, has no
// content, or is negative (top bit of the first byte set). Values that do
// not fit 64 bits fail with [ErrUnsupportedEncoding].
func (e Element) Uint64() (uint64, error) {
	if e.tag != TagInteger {
		return 0, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, TagInteger, e.tag)
	}
	if len(e.value) == 0 {
		return 0, fmt.Errorf("%w: empty INTEGER", ErrMalformedStructure)
	}
	if e.value[0]&0x80 != 0 {
		return 0, fmt.Errorf("%w: negative INTEGER", ErrMalformedStructure)
	}

	v := e.value
	for len(v) > 1 && v[0] == 0 {
		v = v[1:]
	}
	if len(v) > 8 {
		return 0, fmt.Errorf("%w: INTEGER wider than 64 bits", ErrUnsupportedEncoding)
	}

	var n uint64
	for _, b := range v {
		n = n<<8 | uint64(b)
	}
	return n, nil
}

// Bool returns the value of a BOOLEAN. Only the canonical contents 0xFF and
// 0x00 are accepted; anything else fails with [ErrMalformedStructure].
func (e Element) Bool() (bool, error) {
	if e.tag != TagBoolean {
		return false, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, TagBoolean, e.tag)
	}
	if len(e.value) != 1 {
		return false, fmt.Errorf("%w: BOOLEAN of length %d", ErrMalformedStructure, len(e.value))
	}
	switch e.value[0] {
	case 0xff:
		return true, nil
	case 0x00:
		return false, nil
	}
	return false, fmt.Errorf("%w: non-canonical BOOLEAN 0x%02x", ErrMalformedStructure, e.value[0])
}
