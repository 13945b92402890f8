// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/helper/gc"
)

// lengthOfLength returns the number of length octets DER uses for n content bytes.
func lengthOfLength(n int) int {
	if n < 0x80 {
		return 1
	}
	count := 1
	for v := n >> 8; v > 0; v >>= 8 {
		count++
	}
	return 1 + count
}

// writeTo writes the full encoding of e into buf. Lengths of 128 and above
// use the long form with the minimal number of length bytes.
func (e Element) writeTo(buf gc.Buffer) {
	buf.WriteByte(byte(e.tag))
	n := len(e.value)
	if n < 0x80 {
		buf.WriteByte(byte(n))
	} else {
		count := lengthOfLength(n) - 1
		buf.WriteByte(0x80 | byte(count))
		for i := count - 1; i >= 0; i-- {
			buf.WriteByte(byte(n >> (8 * i)))
		}
	}
	buf.Write(e.value)
}

// Encode returns the DER encoding of e.
func (e Element) Encode() []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	e.writeTo(buf)
	return gc.Copy(buf)
}

// AppendEncoding appends the DER encoding of e to dst and returns the extended slice.
func (e Element) AppendEncoding(dst []byte) []byte {
	return append(dst, e.Encode()...)
}

// concat encodes children back to back into a single content buffer.
func concat(children []Element) []byte {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	for _, c := range children {
		c.writeTo(buf)
	}
	if buf.Len() == 0 {
		return nil
	}
	return gc.Copy(buf)
}

// FromBool returns a BOOLEAN whose content is 0xFF for true and 0x00 for false.
func FromBool(b bool) Element {
	v := byte(0x00)
	if b {
		v = 0xff
	}
	return Element{tag: TagBoolean, value: []byte{v}}
}

// FromSequence returns a SEQUENCE whose content is the concatenated
// encodings of children.
func FromSequence(children ...Element) Element {
	return Element{tag: TagSequence, value: concat(children)}
}

// FromSet returns a SET whose content is the concatenated encodings of
// children, kept in the given order.
func FromSet(children ...Element) Element {
	return Element{tag: TagSet, value: concat(children)}
}

// Wrap returns an element with the given (usually explicit context-specific)
// tag whose content is the concatenated encodings of children.
func Wrap(tag Tag, children ...Element) Element {
	return Element{tag: tag, value: concat(children)}
}

// FromOctetString returns an OCTET STRING holding a copy of b.
func FromOctetString(b []byte) Element { return New(TagOctetString, b) }

// FromUTF8String returns a UTF8String holding s.
func FromUTF8String(s string) Element { return New(TagUTF8String, []byte(s)) }

// FromPrintableString returns a PrintableString holding s. The caller is
// responsible for s being within the PrintableString alphabet.
func FromPrintableString(s string) Element { return New(TagPrintableString, []byte(s)) }

// FromNull returns the NULL element.
func FromNull() Element { return Element{tag: TagNull} }
