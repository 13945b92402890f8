// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"slices"
	"strings"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

// Attribute is one attribute=value pair of a distinguished name. Type is the
// registered short name ("CN", "O", "emailAddress") or the dotted OID when
// the attribute type is not registered.
type Attribute struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Name is a distinguished name as an ordered list of attributes. The same
// attribute type may appear more than once.
type Name []Attribute

// Values returns every value recorded for attr, in encounter order.
func (n Name) Values(attr string) []string {
	var out []string
	for _, a := range n {
		if a.Type == attr {
			out = append(out, a.Value)
		}
	}
	return out
}

// First returns the first value recorded for attr.
func (n Name) First(attr string) (string, bool) {
	for _, a := range n {
		if a.Type == attr {
			return a.Value, true
		}
	}
	return "", false
}

// Keys returns the distinct attribute types in order of first appearance.
func (n Name) Keys() []string {
	var out []string
	for _, a := range n {
		if !slices.Contains(out, a.Type) {
			out = append(out, a.Type)
		}
	}
	return out
}

// String formats n as "CN=example.com, O=Example".
func (n Name) String() string {
	var sb strings.Builder
	for i, a := range n {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Type)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	return sb.String()
}

// name decodes an RDNSequence. Each RDN must be a SET holding exactly one
// SEQUENCE of an attribute type OID and a string value; RDNs of any other
// shape are skipped. Only a TLV that cannot be decoded at all, or a
// resource limit, ends the walk.
func (w *walker) name(seq tlv.Element) (Name, error) {
	if err := w.enter(); err != nil {
		return nil, err
	}
	defer w.leave()

	content := seq.Value()
	var out Name
	for off := 0; off < len(content); {
		rdn, span, err := w.decodeAt(content, off)
		if err != nil {
			if isLimit(err) {
				return nil, err
			}
			break
		}
		off = span.End

		attr, ok, err := w.attribute(rdn)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, attr)
		}
	}
	return out, nil
}

// attribute decodes one RDN. ok is false when the RDN is dropped; err is
// only set for resource limits.
func (w *walker) attribute(rdn tlv.Element) (attr Attribute, ok bool, err error) {
	if rdn.Tag() != tlv.TagSet {
		return Attribute{}, false, nil
	}
	if err := w.enter(); err != nil {
		return Attribute{}, false, err
	}
	defer w.leave()

	set, err := w.members(rdn)
	if err != nil || len(set) != 1 || set[0].Tag() != tlv.TagSequence {
		return Attribute{}, false, limitOnly(err)
	}

	if err := w.enter(); err != nil {
		return Attribute{}, false, err
	}
	defer w.leave()

	pair, err := w.members(set[0])
	if err != nil || len(pair) != 2 {
		return Attribute{}, false, limitOnly(err)
	}
	key, err := pair[0].ObjectName()
	if err != nil || key == "" {
		return Attribute{}, false, nil
	}
	return Attribute{Type: key, Value: attributeValue(pair[1])}, true, nil
}

// attributeValue decodes a directory string. Known string types are decoded
// per their tag; anything else is taken as UTF-8.
func attributeValue(e tlv.Element) string {
	if s, err := e.Text(); err == nil {
		return s
	}
	return e.UTF8()
}

// limitOnly keeps err only if it is a resource limit error.
func limitOnly(err error) error {
	if err != nil && isLimit(err) {
		return err
	}
	return nil
}
