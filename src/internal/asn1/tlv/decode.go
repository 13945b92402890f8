// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package tlv

// maxLengthBytes is the largest long-form length-of-length accepted.
const maxLengthBytes = 7

// Span locates one element inside the buffer it was decoded from.
type Span struct {
	Start     int // offset of the tag byte
	HeaderLen int // tag plus length octets
	End       int // offset just past the last content byte
}

// Len returns the total encoded length of the element.
func (s Span) Len() int { return s.End - s.Start }

// ContentStart returns the offset of the first content byte.
func (s Span) ContentStart() int { return s.Start + s.HeaderLen }

// Decode decodes the element at the start of data and returns it together
// with the number of bytes it occupies. Bytes after the element are ignored.
func Decode(data []byte) (Element, int, error) {
	e, span, err := DecodeAt(data, 0)
	if err != nil {
		return Element{}, 0, err
	}
	return e, span.End, nil
}

// DecodeAt decodes the element whose tag byte sits at data[offset].
//
// Decoding fails with [ErrTruncatedInput] when data ends before the header
// or content is complete, with [ErrMalformedStructure] for a zero
// (end-of-contents) tag, and with [ErrUnsupportedEncoding] for indefinite
// lengths or lengths that need more than seven length bytes. All errors are
// returned wrapped in a [*SyntaxError].
//
// The returned element owns a copy of its content, so data may be reused
// by the caller afterwards.
func DecodeAt(data []byte, offset int) (Element, Span, error) {
	span, err := header(data, offset)
	if err != nil {
		return Element{}, Span{}, err
	}
	return Element{
		tag:   Tag(data[offset]),
		value: own(data[span.ContentStart():span.End]),
	}, span, nil
}

// Peek parses only the header of the element at data[offset] and returns
// its span. It fails exactly when [DecodeAt] would, but copies nothing, so
// callers can check the size of an element before taking it.
func Peek(data []byte, offset int) (Span, error) { return header(data, offset) }

// header parses the tag and length octets at data[offset] and checks that
// the content fits in data.
func header(data []byte, offset int) (Span, error) {
	if offset < 0 || offset >= len(data) {
		return Span{}, syntaxError(ErrTruncatedInput, offset, 0)
	}
	tag := Tag(data[offset])
	if tag == 0 {
		return Span{}, syntaxError(ErrMalformedStructure, offset, 0)
	}

	pos := offset + 1
	if pos >= len(data) {
		return Span{}, syntaxError(ErrTruncatedInput, offset, tag)
	}
	first := data[pos]
	pos++

	length := int(first & 0x7f)
	if first&0x80 != 0 {
		count := length
		if count == 0 || count > maxLengthBytes {
			return Span{}, syntaxError(ErrUnsupportedEncoding, offset, tag)
		}
		if pos+count > len(data) {
			return Span{}, syntaxError(ErrTruncatedInput, offset, tag)
		}
		var l uint64
		for _, b := range data[pos : pos+count] {
			l = l<<8 | uint64(b)
		}
		pos += count
		if l > uint64(len(data)) {
			// Also keeps the conversion to int below from overflowing.
			return Span{}, syntaxError(ErrTruncatedInput, offset, tag)
		}
		length = int(l)
	}

	if length > len(data)-pos {
		return Span{}, syntaxError(ErrTruncatedInput, offset, tag)
	}
	return Span{Start: offset, HeaderLen: pos - offset, End: pos + length}, nil
}

// DecodeAll decodes consecutive elements until data is exhausted.
func DecodeAll(data []byte) ([]Element, error) {
	var out []Element
	for off := 0; off < len(data); {
		e, span, err := DecodeAt(data, off)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		off = span.End
	}
	return out, nil
}

// Children decodes the content of a SEQUENCE into its elements. For any other
// tag it returns no children and no error.
func (e Element) Children() ([]Element, error) {
	if e.tag != TagSequence {
		return nil, nil
	}
	return DecodeAll(e.value)
}

// Members decodes the content of e as consecutive elements regardless of its
// tag. It serves SETs and explicitly tagged wrappers such as [0] and [3].
func (e Element) Members() ([]Element, error) {
	return DecodeAll(e.value)
}

// Inner decodes the first element inside the content of e. It is meant for
// explicit tags and OCTET STRING wrappers that hold a single nested encoding.
func (e Element) Inner() (Element, error) {
	inner, _, err := Decode(e.value)
	return inner, err
}
