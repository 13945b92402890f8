// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

import (
	"bytes"
	"fmt"
)

// Tag is a single DER identifier octet: class, constructed bit and tag number.
type Tag byte

// Universal tags used by X.509.
const (
	TagBoolean          Tag = 0x01
	TagInteger          Tag = 0x02
	TagBitString        Tag = 0x03
	TagOctetString      Tag = 0x04
	TagNull             Tag = 0x05
	TagObjectIdentifier Tag = 0x06
	TagUTF8String       Tag = 0x0c
	TagPrintableString  Tag = 0x13
	TagTeletexString    Tag = 0x14
	TagIA5String        Tag = 0x16
	TagUTCTime          Tag = 0x17
	TagGeneralizedTime  Tag = 0x18
	TagVisibleString    Tag = 0x1a
	TagSequence         Tag = 0x30
	TagSet              Tag = 0x31
)

const (
	classContextSpecific = 0x80
	bitConstructed       = 0x20
)

// ContextSpecific returns the context-specific tag [n]. Explicit tags are
// constructed; implicit tags over primitive types are not. n must be below 31.
func ContextSpecific(n byte, constructed bool) Tag {
	t := Tag(classContextSpecific | n&0x1f)
	if constructed {
		t |= bitConstructed
	}
	return t
}

// Constructed reports whether the constructed bit of t is set.
func (t Tag) Constructed() bool { return t&bitConstructed != 0 }

// IsContextSpecific reports whether t belongs to the context-specific class.
func (t Tag) IsContextSpecific() bool { return t&0xc0 == classContextSpecific }

// String returns the ASN.1 name of universal tags and "[n]" for context-specific ones.
func (t Tag) String() string {
	switch t {
	case TagBoolean:
		return "BOOLEAN"
	case TagInteger:
		return "INTEGER"
	case TagBitString:
		return "BIT STRING"
	case TagOctetString:
		return "OCTET STRING"
	case TagNull:
		return "NULL"
	case TagObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case TagUTF8String:
		return "UTF8String"
	case TagPrintableString:
		return "PrintableString"
	case TagTeletexString:
		return "TeletexString"
	case TagIA5String:
		return "IA5String"
	case TagUTCTime:
		return "UTCTime"
	case TagGeneralizedTime:
		return "GeneralizedTime"
	case TagVisibleString:
		return "VisibleString"
	case TagSequence:
		return "SEQUENCE"
	case TagSet:
		return "SET"
	}
	if t.IsContextSpecific() {
		return fmt.Sprintf("[%d]", byte(t)&0x1f)
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}

// Element is one decoded tag-length-value node. The zero Element is not a
// valid encoding; use [New] or one of the From constructors.
//
// Element never aliases the buffer it was decoded from, and none of its
// methods modify it, so it is safe to share across goroutines.
type Element struct {
	tag   Tag
	value []byte
}

// New returns an element with the given tag and a copy of value as its content.
func New(tag Tag, value []byte) Element {
	return Element{tag: tag, value: own(value)}
}

// own copies b so the element never aliases caller memory. Empty content is
// normalized to nil so structurally equal elements are also deeply equal.
func own(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return bytes.Clone(b)
}

// Tag returns the identifier octet of e.
func (e Element) Tag() Tag { return e.tag }

// Value returns a copy of the content bytes of e.
func (e Element) Value() []byte { return bytes.Clone(e.value) }

// Len returns the number of content bytes of e.
func (e Element) Len() int { return len(e.value) }

// EncodedLen returns the number of bytes [Element.Encode] produces for e.
func (e Element) EncodedLen() int { return 1 + lengthOfLength(len(e.value)) + len(e.value) }

// Equal reports whether e and o have the same tag and content bytes.
func (e Element) Equal(o Element) bool {
	return e.tag == o.tag && bytes.Equal(e.value, o.value)
}

// String returns a short description such as "SEQUENCE(42)".
func (e Element) String() string {
	return fmt.Sprintf("%s(%d)", e.tag, len(e.value))
}
