// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"bytes"
	"crypto"
	_ "crypto/sha1"   // registers crypto.SHA1 for Fingerprint
	_ "crypto/sha256" // registers crypto.SHA256 for Fingerprint
	"fmt"
	"slices"
	"time"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
)

// KeyAlgorithm is the public key algorithm named in SubjectPublicKeyInfo.
type KeyAlgorithm int

const (
	KeyAlgorithmUnknown KeyAlgorithm = iota
	KeyAlgorithmRSA
	KeyAlgorithmDSA
)

// String returns "RSA", "DSA" or "Unknown".
func (k KeyAlgorithm) String() string {
	switch k {
	case KeyAlgorithmRSA:
		return "RSA"
	case KeyAlgorithmDSA:
		return "DSA"
	}
	return "Unknown"
}

// keyAlgorithmFor maps an algorithm OID to a KeyAlgorithm.
func keyAlgorithmFor(dotted string) KeyAlgorithm {
	switch dotted {
	case oid.RSAEncryption:
		return KeyAlgorithmRSA
	case oid.DSA:
		return KeyAlgorithmDSA
	}
	return KeyAlgorithmUnknown
}

// Certificate is the decoded structure of one X.509 certificate. It is
// immutable: every accessor returns a copy of the underlying data.
type Certificate struct {
	version      int
	serial       []byte
	issuer       Name
	subject      Name
	rawIssuer    []byte
	rawSubject   []byte
	notBefore    time.Time
	notAfter     time.Time
	hasNotBefore bool
	hasNotAfter  bool
	keyAlgorithm KeyAlgorithm
	publicKeyDER []byte
	extensions   []Extension
	altNames     []AltName
	der          []byte
	selfSigned   bool
}

// Version returns the certificate version (1, 2 or 3).
func (c *Certificate) Version() int { return c.version }

// SerialNumber returns the raw INTEGER content of the serial number.
func (c *Certificate) SerialNumber() []byte { return bytes.Clone(c.serial) }

// SerialNumberHex returns the serial number as colon-separated lowercase hex
// with leading zero bytes stripped, e.g. "8b:27:0e:1e".
func (c *Certificate) SerialNumberHex() string { return colonHex(c.serial) }

// Issuer returns the issuer distinguished name.
func (c *Certificate) Issuer() Name { return slices.Clone(c.issuer) }

// Subject returns the subject distinguished name.
func (c *Certificate) Subject() Name { return slices.Clone(c.subject) }

// RawIssuer returns the exact DER encoding of the issuer Name.
func (c *Certificate) RawIssuer() []byte { return bytes.Clone(c.rawIssuer) }

// RawSubject returns the exact DER encoding of the subject Name.
func (c *Certificate) RawSubject() []byte { return bytes.Clone(c.rawSubject) }

// NotBefore returns the start of the validity period. ok is false when the
// date was missing or could not be parsed.
func (c *Certificate) NotBefore() (t time.Time, ok bool) { return c.notBefore, c.hasNotBefore }

// NotAfter returns the end of the validity period. ok is false when the
// date was missing or could not be parsed.
func (c *Certificate) NotAfter() (t time.Time, ok bool) { return c.notAfter, c.hasNotAfter }

// ValidAt reports whether t lies within the validity period. A certificate
// with an absent date is never valid.
func (c *Certificate) ValidAt(t time.Time) bool {
	if !c.hasNotBefore || !c.hasNotAfter {
		return false
	}
	return !t.Before(c.notBefore) && !t.After(c.notAfter)
}

// PublicKeyAlgorithm returns the algorithm named in SubjectPublicKeyInfo.
func (c *Certificate) PublicKeyAlgorithm() KeyAlgorithm { return c.keyAlgorithm }

// PublicKeyDER returns the full DER encoding of SubjectPublicKeyInfo.
func (c *Certificate) PublicKeyDER() []byte { return bytes.Clone(c.publicKeyDER) }

// Extensions returns the extensions in encounter order.
func (c *Certificate) Extensions() []Extension {
	out := make([]Extension, len(c.extensions))
	for i, e := range c.extensions {
		e.Value = cloneValue(e.Value)
		out[i] = e
	}
	return out
}

// Extension returns the first extension with the given dotted OID.
func (c *Certificate) Extension(dotted string) (Extension, bool) {
	for _, e := range c.extensions {
		if e.OID == dotted {
			e.Value = cloneValue(e.Value)
			return e, true
		}
	}
	return Extension{}, false
}

// BasicConstraints returns the decoded basicConstraints extension, if any.
func (c *Certificate) BasicConstraints() (BasicConstraints, bool) {
	e, ok := c.Extension(oid.BasicConstraints)
	if !ok {
		return BasicConstraints{}, false
	}
	bc, ok := e.Value.(BasicConstraints)
	return bc, ok
}

// IsCA reports whether basicConstraints is present with cA set.
func (c *Certificate) IsCA() bool {
	bc, ok := c.BasicConstraints()
	return ok && bc.CA
}

// SubjectKeyID returns the subjectKeyIdentifier, if any.
func (c *Certificate) SubjectKeyID() (KeyIdentifier, bool) {
	e, ok := c.Extension(oid.SubjectKeyIdentifier)
	if !ok {
		return "", false
	}
	id, ok := e.Value.(KeyIdentifier)
	return id, ok
}

// AuthorityKeyID returns the authorityKeyIdentifier, if any.
func (c *Certificate) AuthorityKeyID() (AuthorityKeyID, bool) {
	e, ok := c.Extension(oid.AuthorityKeyIdentifier)
	if !ok {
		return AuthorityKeyID{}, false
	}
	aki, ok := e.Value.(AuthorityKeyID)
	return aki, ok
}

// SubjectAltNames returns the email and DNS entries of every subjectAltName
// extension, in encounter order.
func (c *Certificate) SubjectAltNames() []AltName { return slices.Clone(c.altNames) }

// DNSNames returns the DNS subjectAltName entries.
func (c *Certificate) DNSNames() []string { return c.altNamesOf(AltNameDNS) }

// EmailAddresses returns the email subjectAltName entries.
func (c *Certificate) EmailAddresses() []string { return c.altNamesOf(AltNameEmail) }

func (c *Certificate) altNamesOf(t AltNameType) []string {
	var out []string
	for _, n := range c.altNames {
		if n.Type == t {
			out = append(out, n.Value)
		}
	}
	return out
}

// DER returns the exact bytes the certificate was decoded from. Its length
// is the offset of the next certificate in a concatenated buffer.
func (c *Certificate) DER() []byte { return bytes.Clone(c.der) }

// Len returns len(c.DER()) without copying.
func (c *Certificate) Len() int { return len(c.der) }

// IsSelfSigned reports whether the issuer and subject Names are byte-for-byte
// identical. The signature is not checked.
func (c *Certificate) IsSelfSigned() bool { return c.selfSigned }

// Equal reports whether c and o were decoded from the same bytes.
func (c *Certificate) Equal(o *Certificate) bool {
	if c == nil || o == nil {
		return c == o
	}
	return bytes.Equal(c.der, o.der)
}

// Fingerprint returns the digest of the DER bytes as uppercase
// colon-separated hex. Only SHA-1 and SHA-256 are linked in.
func (c *Certificate) Fingerprint(h crypto.Hash) (string, error) {
	if !h.Available() {
		return "", fmt.Errorf("x509der: hash %v is not available", h)
	}
	d := h.New()
	d.Write(c.der)
	sum := d.Sum(nil)

	out := make([]byte, 0, len(sum)*3)
	for i, b := range sum {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, upperHex([]byte{b})...)
	}
	return string(out), nil
}
