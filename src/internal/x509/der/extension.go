// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

// Extension is one decoded certificate extension.
type Extension struct {
	OID      string
	Name     string // registered name, or OID when unknown
	Critical bool

	// Supported is true when Value holds a typed decoding. Unsupported
	// extensions carry their payload as [RawValue].
	Supported bool
	Value     ExtensionValue
}

// ExtensionValue is the decoded payload of an extension. It is one of
// [BasicConstraints], [KeyIdentifier], [AuthorityKeyID],
// [AuthorityInfoAccess], [SubjectAltNames] or [RawValue].
type ExtensionValue interface {
	extensionValue()
}

// BasicConstraints is the payload of the basicConstraints extension.
type BasicConstraints struct {
	CA         bool
	PathLen    int
	HasPathLen bool
}

// KeyIdentifier is the subjectKeyIdentifier as uppercase hex without separators.
type KeyIdentifier string

// AuthorityKeyID is the payload of the authorityKeyIdentifier extension.
// KeyID is uppercase hex without separators so it compares equal to the
// issuer's [KeyIdentifier]; Serial is colon-separated hex.
//
// Qt's QSslCertificate and hex.EncodeToString print the keyid in lowercase,
// so compare KeyID against such output with [strings.EqualFold].
type AuthorityKeyID struct {
	KeyID     string
	HasKeyID  bool
	Serial    string
	HasSerial bool
}

// AuthorityInfoAccess maps an access method name ("OCSP", "caIssuers", or
// the dotted OID) to its location. A later entry for the same method
// replaces an earlier one.
type AuthorityInfoAccess map[string]string

// SubjectAltNames lists the email and DNS entries of a subjectAltName
// extension in encounter order.
type SubjectAltNames []AltName

// RawValue is the undecoded OCTET STRING payload of an unsupported extension.
type RawValue []byte

func (BasicConstraints) extensionValue()    {}
func (KeyIdentifier) extensionValue()       {}
func (AuthorityKeyID) extensionValue()      {}
func (AuthorityInfoAccess) extensionValue() {}
func (SubjectAltNames) extensionValue()     {}
func (RawValue) extensionValue()            {}

// AltNameType identifies the GeneralName variant of an [AltName].
type AltNameType int

const (
	AltNameEmail AltNameType = iota + 1
	AltNameDNS
)

// String returns "Email" or "DNS".
func (t AltNameType) String() string {
	switch t {
	case AltNameEmail:
		return "Email"
	case AltNameDNS:
		return "DNS"
	}
	return fmt.Sprintf("AltNameType(%d)", int(t))
}

// AltName is one subjectAltName entry.
type AltName struct {
	Type  AltNameType
	Value string
}

// generalNameTag is a GeneralName CHOICE alternative (implicit, primitive).
type generalNameTag tlv.Tag

const (
	gnRFC822Name generalNameTag = 0x81
	gnDNSName    generalNameTag = 0x82
	gnURI        generalNameTag = 0x86
)

// akiTag is a field of AuthorityKeyIdentifier (implicit, primitive).
type akiTag tlv.Tag

const (
	akiKeyIdentifier akiTag = 0x80
	akiSerialNumber  akiTag = 0x82
)

// valueDecoder decodes the OCTET STRING payload of one known extension.
type valueDecoder func(w *walker, payload tlv.Element) (ExtensionValue, error)

var valueDecoders = map[string]valueDecoder{
	oid.BasicConstraints:       (*walker).basicConstraints,
	oid.SubjectKeyIdentifier:   (*walker).subjectKeyID,
	oid.AuthorityKeyIdentifier: (*walker).authorityKeyID,
	oid.AuthorityInfoAccess:    (*walker).authorityInfoAccess,
	oid.SubjectAltName:         (*walker).subjectAltNames,
}

// extension decodes Extension ::= SEQUENCE { extnID, critical BOOLEAN
// DEFAULT FALSE, extnValue OCTET STRING }.
//
// An unreadable extnID, or a bad envelope or payload under one of the known
// OIDs, is fatal. An unknown OID never fails: if its envelope does not
// parse, everything after the OID is kept as the raw value.
func (w *walker) extension(seq tlv.Element) (Extension, error) {
	if err := w.enter(); err != nil {
		return Extension{}, fieldErr("extension", err)
	}
	defer w.leave()

	content := seq.Value()
	id, span, err := w.decodeAt(content, 0)
	if err != nil {
		return Extension{}, fieldErr("extension", err)
	}
	if id.Tag() != tlv.TagObjectIdentifier {
		return Extension{}, wrongTag("extension", tlv.TagObjectIdentifier, id.Tag())
	}
	dotted, err := id.ObjectIdentifier()
	if err != nil {
		return Extension{}, fieldErr("extension", err)
	}

	ext := Extension{OID: dotted, Name: oid.Lookup(dotted)}
	field := "extension " + ext.Name
	decode, known := valueDecoders[dotted]

	critical, payload, err := w.envelope(content, span.End)
	if err != nil {
		if known || isLimit(err) {
			return Extension{}, fieldErr(field, err)
		}
		ext.Value = RawValue(bytes.Clone(content[span.End:]))
		return ext, nil
	}
	ext.Critical = critical

	if !known {
		ext.Value = RawValue(payload.Value())
		return ext, nil
	}
	v, err := decode(w, payload)
	if err != nil {
		return Extension{}, fieldErr(field, err)
	}
	ext.Supported = true
	ext.Value = v
	return ext, nil
}

// envelope reads the optional critical flag and the extnValue OCTET STRING
// that follow the extnID at content[off:].
func (w *walker) envelope(content []byte, off int) (critical bool, payload tlv.Element, err error) {
	el, span, err := w.decodeAt(content, off)
	if err != nil {
		return false, tlv.Element{}, err
	}
	if el.Tag() == tlv.TagBoolean {
		if critical, err = el.Bool(); err != nil {
			return false, tlv.Element{}, err
		}
		if el, _, err = w.decodeAt(content, span.End); err != nil {
			return false, tlv.Element{}, err
		}
	}
	if el.Tag() != tlv.TagOctetString {
		return false, tlv.Element{}, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, tlv.TagOctetString, el.Tag())
	}
	return critical, el, nil
}

// payloadSequence decodes the SEQUENCE wrapped by an extnValue and returns its members.
func (w *walker) payloadSequence(payload tlv.Element) ([]tlv.Element, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	seq, err := w.inner(payload)
	if err != nil {
		return nil, err
	}
	if seq.Tag() != tlv.TagSequence {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, tlv.TagSequence, seq.Tag())
	}
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()
	return w.members(seq)
}

// basicConstraints decodes SEQUENCE { cA BOOLEAN DEFAULT FALSE,
// pathLenConstraint INTEGER OPTIONAL }.
func (w *walker) basicConstraints(payload tlv.Element) (ExtensionValue, error) {
	items, err := w.payloadSequence(payload)
	if err != nil {
		return nil, err
	}

	var bc BasicConstraints
	i := 0
	if i < len(items) && items[i].Tag() == tlv.TagBoolean {
		if bc.CA, err = items[i].Bool(); err != nil {
			return nil, err
		}
		i++
	}
	if i < len(items) && items[i].Tag() == tlv.TagInteger {
		n, err := items[i].Uint64()
		if err != nil {
			return nil, err
		}
		if n > uint64(maxPathLen) {
			return nil, fmt.Errorf("%w: pathLenConstraint %d", ErrUnsupportedEncoding, n)
		}
		bc.PathLen, bc.HasPathLen = int(n), true
		i++
	}
	if i < len(items) {
		return nil, fmt.Errorf("%w: unexpected %s in basicConstraints", ErrMalformedStructure, items[i].Tag())
	}
	return bc, nil
}

const maxPathLen = 1<<31 - 1

// subjectKeyID decodes KeyIdentifier ::= OCTET STRING.
func (w *walker) subjectKeyID(payload tlv.Element) (ExtensionValue, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	id, err := w.inner(payload)
	if err != nil {
		return nil, err
	}
	if id.Tag() != tlv.TagOctetString {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrMalformedStructure, tlv.TagOctetString, id.Tag())
	}
	return KeyIdentifier(upperHex(id.Value())), nil
}

// authorityKeyID decodes the keyIdentifier [0] and authorityCertSerialNumber
// [2] fields. authorityCertIssuer [1] is not decoded.
func (w *walker) authorityKeyID(payload tlv.Element) (ExtensionValue, error) {
	items, err := w.payloadSequence(payload)
	if err != nil {
		return nil, err
	}

	var aki AuthorityKeyID
	for _, it := range items {
		switch akiTag(it.Tag()) {
		case akiKeyIdentifier:
			aki.KeyID, aki.HasKeyID = upperHex(it.Value()), true
		case akiSerialNumber:
			aki.Serial, aki.HasSerial = colonHex(it.Value()), true
		}
	}
	return aki, nil
}

// authorityInfoAccess decodes SEQUENCE OF AccessDescription. Email, DNS and
// URI locations are kept; other GeneralName forms are ignored.
func (w *walker) authorityInfoAccess(payload tlv.Element) (ExtensionValue, error) {
	items, err := w.payloadSequence(payload)
	if err != nil {
		return nil, err
	}
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	aia := AuthorityInfoAccess{}
	for _, it := range items {
		if it.Tag() != tlv.TagSequence {
			return nil, fmt.Errorf("%w: AccessDescription is %s", ErrMalformedStructure, it.Tag())
		}
		pair, err := w.members(it)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: AccessDescription has %d elements", ErrMalformedStructure, len(pair))
		}
		method, err := pair[0].ObjectName()
		if err != nil {
			return nil, err
		}
		switch generalNameTag(pair[1].Tag()) {
		case gnRFC822Name, gnDNSName, gnURI:
			aia[method] = pair[1].Latin1()
		}
	}
	return aia, nil
}

// subjectAltNames decodes GeneralNames keeping only rfc822Name and dNSName.
// URIs, IP addresses and the other forms are skipped here even though
// authorityInfoAccess keeps URIs.
func (w *walker) subjectAltNames(payload tlv.Element) (ExtensionValue, error) {
	items, err := w.payloadSequence(payload)
	if err != nil {
		return nil, err
	}

	var names SubjectAltNames
	for _, it := range items {
		switch generalNameTag(it.Tag()) {
		case gnRFC822Name:
			names = append(names, AltName{Type: AltNameEmail, Value: it.Latin1()})
		case gnDNSName:
			names = append(names, AltName{Type: AltNameDNS, Value: it.Latin1()})
		}
	}
	return names, nil
}

// cloneValue returns a deep copy of v so callers cannot mutate a certificate.
func cloneValue(v ExtensionValue) ExtensionValue {
	switch v := v.(type) {
	case AuthorityInfoAccess:
		return AuthorityInfoAccess(maps.Clone(map[string]string(v)))
	case SubjectAltNames:
		return SubjectAltNames(slices.Clone([]AltName(v)))
	case RawValue:
		return RawValue(bytes.Clone([]byte(v)))
	}
	return v
}
