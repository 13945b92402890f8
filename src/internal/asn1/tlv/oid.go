// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
)

// FromObjectIdentifier encodes a dotted OID such as "1.2.840.113549.1.9.1".
// The first two arcs are combined as arc1*40+arc2; every arc is then written
// base-128 with the continuation bit set on all but its last byte.
func FromObjectIdentifier(dotted string) (Element, error) {
	parts := strings.Split(dotted, ".")
	if len(parts) < 2 {
		return Element{}, fmt.Errorf("%w: %q needs at least two arcs", ErrInvalidObjectIdentifier, dotted)
	}
	arcs := make([]uint64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Element{}, fmt.Errorf("%w: %q: %v", ErrInvalidObjectIdentifier, dotted, err)
		}
		arcs[i] = v
	}
	if arcs[0] > 2 || (arcs[0] < 2 && arcs[1] >= 40) || arcs[1] > ^uint64(0)-80 {
		return Element{}, fmt.Errorf("%w: %q has out of range leading arcs", ErrInvalidObjectIdentifier, dotted)
	}

	value := appendBase128(nil, arcs[0]*40+arcs[1])
	for _, a := range arcs[2:] {
		value = appendBase128(value, a)
	}
	return Element{tag: TagObjectIdentifier, value: value}, nil
}

// appendBase128 appends v in big-endian base-128 with continuation bits.
func appendBase128(dst []byte, v uint64) []byte {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

// ObjectIdentifier returns the dotted form of an OBJECT IDENTIFIER.
func (e Element) ObjectIdentifier() (string, error) {
	if e.tag != TagObjectIdentifier {
		return "", fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, TagObjectIdentifier, e.tag)
	}
	if len(e.value) == 0 {
		return "", fmt.Errorf("%w: empty OBJECT IDENTIFIER", ErrMalformedStructure)
	}

	var sb strings.Builder
	first := true
	var v uint64
	for i, b := range e.value {
		if v > (^uint64(0))>>7 {
			return "", fmt.Errorf("%w: OBJECT IDENTIFIER arc wider than 64 bits", ErrUnsupportedEncoding)
		}
		v = v<<7 | uint64(b&0x7f)
		if b&0x80 != 0 {
			if i == len(e.value)-1 {
				return "", fmt.Errorf("%w: unterminated OBJECT IDENTIFIER arc", ErrMalformedStructure)
			}
			continue
		}
		if first {
			switch {
			case v < 40:
				sb.WriteString("0.")
				sb.WriteString(strconv.FormatUint(v, 10))
			case v < 80:
				sb.WriteString("1.")
				sb.WriteString(strconv.FormatUint(v-40, 10))
			default:
				sb.WriteString("2.")
				sb.WriteString(strconv.FormatUint(v-80, 10))
			}
			first = false
		} else {
			sb.WriteByte('.')
			sb.WriteString(strconv.FormatUint(v, 10))
		}
		v = 0
	}
	return sb.String(), nil
}

// ObjectName returns the registered display name of an OBJECT IDENTIFIER,
// or its dotted form when the OID is not registered.
func (e Element) ObjectName() (string, error) {
	dotted, err := e.ObjectIdentifier()
	if err != nil {
		return "", err
	}
	return oid.Lookup(dotted), nil
}
