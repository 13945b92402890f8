// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509bundle

import (
	"bytes"
	"time"

	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

// DefaultWarnDays is how close to expiry a certificate is flagged when no
// [WithWarnDays] option is given.
const DefaultWarnDays = 30

// Validity status values reported by [Bundle.Status].
const (
	StatusValid        = "valid"
	StatusExpiringSoon = "expiring soon"
	StatusExpired      = "expired"
	StatusNotYetValid  = "not yet valid"
	StatusUnknown      = "unknown"
)

// Bundle is an ordered set of decoded certificates.
//
// A Bundle is never modified after [New] returns and is safe for
// concurrent use.
type Bundle struct {
	Certs []*x509der.Certificate

	now      func() time.Time
	warnDays int
	issuers  []int
}

// Option configures a [Bundle].
type Option func(*Bundle)

// WithClock sets the clock used for validity status and report timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Bundle) { b.now = now }
}

// WithWarnDays flags certificates that expire within days as expiring soon.
// Negative values are ignored.
func WithWarnDays(days int) Option {
	return func(b *Bundle) {
		if days >= 0 {
			b.warnDays = days
		}
	}
}

// New creates a Bundle over certs and resolves the issued-by links.
//
// Parameters:
//   - certs: decoded certificates, usually leaf first
//   - opts: optional clock and expiry warning settings
//
// Returns:
//   - *Bundle: the bundle, holding its own copy of the certs slice
func New(certs []*x509der.Certificate, opts ...Option) *Bundle {
	b := &Bundle{
		Certs:    append([]*x509der.Certificate(nil), certs...),
		now:      time.Now,
		warnDays: DefaultWarnDays,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.issuers = make([]int, len(b.Certs))
	for i := range b.Certs {
		b.issuers[i] = b.findIssuer(i)
	}
	return b
}

// Len returns the number of certificates in the bundle.
func (b *Bundle) Len() int { return len(b.Certs) }

// IssuerIndex returns the index of the certificate that issued Certs[i], or
// -1 when Certs[i] is self-signed or its issuer is not in the bundle.
func (b *Bundle) IssuerIndex(i int) int { return b.issuers[i] }

// findIssuer looks for a certificate whose subject matches the issuer of
// Certs[i]. When Certs[i] carries an authority key identifier and the
// candidate a subject key identifier, the two must agree as well.
func (b *Bundle) findIssuer(i int) int {
	cert := b.Certs[i]
	if cert.IsSelfSigned() {
		return -1
	}
	rawIssuer := cert.RawIssuer()
	aki, hasAKI := cert.AuthorityKeyID()

	for j, candidate := range b.Certs {
		if j == i || !bytes.Equal(candidate.RawSubject(), rawIssuer) {
			continue
		}
		if hasAKI && aki.HasKeyID {
			if ski, ok := candidate.SubjectKeyID(); ok && string(ski) != aki.KeyID {
				continue
			}
		}
		return j
	}
	return -1
}

// Role describes the position of Certs[i] in the bundle.
//
// Returns one of "Root CA Certificate", "Self-Signed Certificate",
// "Intermediate CA Certificate" or "End-Entity Certificate".
func (b *Bundle) Role(i int) string {
	cert := b.Certs[i]
	switch {
	case cert.IsSelfSigned() && cert.IsCA():
		return "Root CA Certificate"
	case cert.IsSelfSigned():
		return "Self-Signed Certificate"
	case cert.IsCA():
		return "Intermediate CA Certificate"
	default:
		return "End-Entity Certificate"
	}
}

// Status reports the validity of Certs[i] at the bundle clock.
func (b *Bundle) Status(i int) string {
	cert := b.Certs[i]
	notBefore, okBefore := cert.NotBefore()
	notAfter, okAfter := cert.NotAfter()
	if !okBefore || !okAfter {
		return StatusUnknown
	}

	now := b.now()
	switch {
	case now.Before(notBefore):
		return StatusNotYetValid
	case now.After(notAfter):
		return StatusExpired
	case notAfter.Sub(now) < time.Duration(b.warnDays)*24*time.Hour:
		return StatusExpiringSoon
	default:
		return StatusValid
	}
}

// statusIcon maps a status to the marker used by the tree view.
func statusIcon(status string) string {
	switch status {
	case StatusValid:
		return "✓"
	case StatusExpiringSoon:
		return "!"
	case StatusUnknown:
		return "?"
	default:
		return "✗"
	}
}

// displayName is the common name of n, or the whole Name when it has none.
func displayName(n x509der.Name) string {
	if cn, ok := n.First("CN"); ok {
		return cn
	}
	if len(n) == 0 {
		return "(empty)"
	}
	return n.String()
}
