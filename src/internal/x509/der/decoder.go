// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"bytes"
	"fmt"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

// tbsTag is an explicit context-specific tag inside TBSCertificate.
type tbsTag tlv.Tag

const (
	tbsVersion    tbsTag = 0xa0
	tbsExtensions tbsTag = 0xa3
)

// maxVersion bounds the decoded version number.
const maxVersion = 1 << 16

// Decoder decodes DER certificates under a fixed set of [Limits].
//
// A Decoder holds no mutable state and is safe for concurrent use.
type Decoder struct {
	limits Limits
}

// NewDecoder creates a Decoder enforcing limits.
func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits}
}

var defaultDecoder = NewDecoder(DefaultLimits())

// Decode decodes one certificate with [DefaultLimits].
func Decode(data []byte) (*Certificate, error) { return defaultDecoder.Decode(data) }

// DecodeAll decodes concatenated certificates with [DefaultLimits].
func DecodeAll(data []byte) ([]*Certificate, error) { return defaultDecoder.DecodeAll(data) }

// Limits returns the limits d enforces.
func (d *Decoder) Limits() Limits { return d.limits }

// Decode decodes the certificate that starts at data[0]. Bytes after the
// certificate are ignored; [Certificate.Len] tells how many were used.
//
// Parameters:
//   - data: DER bytes positioned at the Certificate SEQUENCE tag
//
// Returns:
//   - *Certificate: the fully populated certificate
//   - error: a [*DecodeError] wrapping one of the package sentinels
func (d *Decoder) Decode(data []byte) (*Certificate, error) {
	w := &walker{limits: d.limits}
	return w.certificate(data)
}

// DecodeAll decodes back-to-back certificates until data is exhausted.
//
// Each certificate is decoded from the bytes following the previous one.
// If a certificate fails to decode, the certificates decoded so far are
// returned together with the error.
func (d *Decoder) DecodeAll(data []byte) ([]*Certificate, error) {
	var certs []*Certificate
	for len(data) > 0 {
		c, err := d.Decode(data)
		if err != nil {
			return certs, fmt.Errorf("certificate %d: %w", len(certs)+1, err)
		}
		certs = append(certs, c)
		data = data[c.Len():]
	}
	return certs, nil
}

// certificate walks Certificate and its TBSCertificate.
func (w *walker) certificate(data []byte) (*Certificate, error) {
	outer, outerSpan, err := w.decodeAt(data, 0)
	if err != nil {
		return nil, fieldErr("certificate", err)
	}
	if outer.Tag() != tlv.TagSequence {
		return nil, wrongTag("certificate", tlv.TagSequence, outer.Tag())
	}
	if err := w.enter(); err != nil {
		return nil, fieldErr("certificate", err)
	}
	defer w.leave()

	// Slicing at outerSpan.End keeps every inner read inside the outer element.
	body := data[:outerSpan.End]
	tbs, tbsSpan, err := w.decodeAt(body, outerSpan.ContentStart())
	if err != nil {
		return nil, fieldErr("tbsCertificate", err)
	}
	if tbs.Tag() != tlv.TagSequence {
		return nil, wrongTag("tbsCertificate", tlv.TagSequence, tbs.Tag())
	}
	if err := w.enter(); err != nil {
		return nil, fieldErr("tbsCertificate", err)
	}
	defer w.leave()

	c := &Certificate{version: 1}
	t := &tbsReader{w: w, data: body[:tbsSpan.End], off: tbsSpan.ContentStart()}

	el, _, err := t.next("version")
	if err != nil {
		return nil, err
	}
	if tbsTag(el.Tag()) == tbsVersion {
		if c.version, err = w.version(el); err != nil {
			return nil, fieldErr("version", err)
		}
		if el, _, err = t.next("serialNumber"); err != nil {
			return nil, err
		}
	}

	if el.Tag() != tlv.TagInteger {
		return nil, wrongTag("serialNumber", tlv.TagInteger, el.Tag())
	}
	if el.Len() == 0 {
		return nil, fieldErr("serialNumber", fmt.Errorf("%w: empty INTEGER", ErrMalformedStructure))
	}
	c.serial = el.Value()

	if _, _, err = t.expect("signature", tlv.TagSequence); err != nil {
		return nil, err
	}

	issuer, issuerSpan, err := t.expect("issuer", tlv.TagSequence)
	if err != nil {
		return nil, err
	}
	c.rawIssuer = bytes.Clone(t.data[issuerSpan.Start:issuerSpan.End])
	if c.issuer, err = w.name(issuer); err != nil {
		return nil, fieldErr("issuer", err)
	}

	validity, _, err := t.expect("validity", tlv.TagSequence)
	if err != nil {
		return nil, err
	}
	if err = w.validity(validity, c); err != nil {
		return nil, fieldErr("validity", err)
	}

	subject, subjectSpan, err := t.expect("subject", tlv.TagSequence)
	if err != nil {
		return nil, err
	}
	c.rawSubject = bytes.Clone(t.data[subjectSpan.Start:subjectSpan.End])
	if c.subject, err = w.name(subject); err != nil {
		return nil, fieldErr("subject", err)
	}
	c.selfSigned = bytes.Equal(c.rawIssuer, c.rawSubject)

	spki, spkiSpan, err := t.expect("subjectPublicKeyInfo", tlv.TagSequence)
	if err != nil {
		return nil, err
	}
	c.publicKeyDER = bytes.Clone(t.data[spkiSpan.Start:spkiSpan.End])
	if c.keyAlgorithm, err = w.keyAlgorithm(spki); err != nil {
		return nil, fieldErr("subjectPublicKeyInfo", err)
	}

	if err = w.extensions(t, c); err != nil {
		return nil, err
	}

	c.der = bytes.Clone(body)
	return c, nil
}

// tbsReader steps through the mandatory TBSCertificate fields.
type tbsReader struct {
	w    *walker
	data []byte
	off  int
}

// done reports whether every TBSCertificate element has been read.
func (t *tbsReader) done() bool { return t.off >= len(t.data) }

// next decodes the element at the cursor and advances past it.
func (t *tbsReader) next(field string) (tlv.Element, tlv.Span, error) {
	el, span, err := t.w.decodeAt(t.data, t.off)
	if err != nil {
		return tlv.Element{}, tlv.Span{}, fieldErr(field, err)
	}
	t.off = span.End
	return el, span, nil
}

// expect is next plus a tag check.
func (t *tbsReader) expect(field string, tag tlv.Tag) (tlv.Element, tlv.Span, error) {
	el, span, err := t.next(field)
	if err != nil {
		return tlv.Element{}, tlv.Span{}, err
	}
	if el.Tag() != tag {
		return tlv.Element{}, tlv.Span{}, wrongTag(field, tag, el.Tag())
	}
	return el, span, nil
}

// version decodes [0] EXPLICIT INTEGER. DER stores v1 as 0.
func (w *walker) version(wrapper tlv.Element) (int, error) {
	if err := w.enter(); err != nil {
		return 0, err
	}
	defer w.leave()

	v, err := w.inner(wrapper)
	if err != nil {
		return 0, err
	}
	if v.Tag() != tlv.TagInteger {
		return 0, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, tlv.TagInteger, v.Tag())
	}
	n, err := v.Uint64()
	if err != nil {
		return 0, err
	}
	if n >= maxVersion {
		return 0, fmt.Errorf("%w: version %d", ErrUnsupportedEncoding, n)
	}
	return int(n) + 1, nil
}

// validity reads notBefore and notAfter. A missing, undecodable or
// unparsable date is left absent.
func (w *walker) validity(seq tlv.Element, c *Certificate) error {
	if err := w.enter(); err != nil {
		return err
	}
	defer w.leave()

	content := seq.Value()
	off := 0
	for i := range 2 {
		el, span, err := w.decodeAt(content, off)
		if err != nil {
			return limitOnly(err)
		}
		off = span.End

		t, ok := el.Time()
		if i == 0 {
			c.notBefore, c.hasNotBefore = t, ok
		} else {
			c.notAfter, c.hasNotAfter = t, ok
		}
	}
	return nil
}

// keyAlgorithm peeks at SubjectPublicKeyInfo.algorithm.algorithm.
func (w *walker) keyAlgorithm(spki tlv.Element) (KeyAlgorithm, error) {
	if err := w.enter(); err != nil {
		return KeyAlgorithmUnknown, err
	}
	defer w.leave()

	algo, err := w.inner(spki)
	if err != nil {
		return KeyAlgorithmUnknown, err
	}
	if algo.Tag() != tlv.TagSequence {
		return KeyAlgorithmUnknown, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, tlv.TagSequence, algo.Tag())
	}

	if err := w.enter(); err != nil {
		return KeyAlgorithmUnknown, err
	}
	defer w.leave()

	id, err := w.inner(algo)
	if err != nil {
		return KeyAlgorithmUnknown, err
	}
	dotted, err := id.ObjectIdentifier()
	if err != nil {
		return KeyAlgorithmUnknown, err
	}
	return keyAlgorithmFor(dotted), nil
}

// extensions consumes the optional trailing TBSCertificate elements. Only
// [3] EXPLICIT Extensions is decoded; issuerUniqueID and subjectUniqueID are
// skipped. An element that cannot be decoded, or a [3] whose content is not
// a SEQUENCE of SEQUENCEs, ends the walk without failing the certificate.
func (w *walker) extensions(t *tbsReader, c *Certificate) error {
	for !t.done() {
		el, _, err := t.next("extensions")
		if err != nil {
			return limitOnlyField("extensions", err)
		}
		if tbsTag(el.Tag()) != tbsExtensions {
			continue
		}

		stop, err := w.extensionList(el, c)
		if err != nil || stop {
			return err
		}
	}
	return nil
}

// extensionList decodes the SEQUENCE inside [3]. stop is true when the
// content did not have the expected shape.
func (w *walker) extensionList(wrapper tlv.Element, c *Certificate) (stop bool, err error) {
	if err := w.enter(); err != nil {
		return true, fieldErr("extensions", err)
	}
	defer w.leave()

	list, err := w.inner(wrapper)
	if err != nil || list.Tag() != tlv.TagSequence {
		return true, limitOnlyField("extensions", err)
	}

	if err := w.enter(); err != nil {
		return true, fieldErr("extensions", err)
	}
	defer w.leave()

	content := list.Value()
	for off := 0; off < len(content); {
		el, span, err := w.decodeAt(content, off)
		if err != nil || el.Tag() != tlv.TagSequence {
			return true, limitOnlyField("extensions", err)
		}
		off = span.End

		ext, err := w.extension(el)
		if err != nil {
			return true, err
		}
		c.extensions = append(c.extensions, ext)
		if names, ok := ext.Value.(SubjectAltNames); ok {
			c.altNames = append(c.altNames, names...)
		}
	}
	return false, nil
}

// limitOnlyField is limitOnly with the field name attached.
func limitOnlyField(field string, err error) error {
	if err = limitOnly(err); err != nil {
		return fieldErr(field, err)
	}
	return nil
}
