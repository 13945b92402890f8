// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/oid"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv"
)

// certTemplate describes a synthetic certificate assembled element by
// element, so tests can produce shapes crypto/x509 refuses to emit.
type certTemplate struct {
	version    int // 0 omits the [0] wrapper
	serial     tlv.Element
	issuer     tlv.Element
	subject    tlv.Element
	notBefore  tlv.Element
	notAfter   tlv.Element
	keyOID     string
	trailing   []tlv.Element // placed after subjectPublicKeyInfo, before extensions
	extensions []tlv.Element // nil omits [3]
	afterExts  []tlv.Element
}

func oidElem(t *testing.T, dotted string) tlv.Element {
	t.Helper()
	e, err := tlv.FromObjectIdentifier(dotted)
	require.NoError(t, err)
	return e
}

// dn builds a Name from alternating attribute OID / value pairs.
func dn(t *testing.T, pairs ...string) tlv.Element {
	t.Helper()
	require.Zero(t, len(pairs)%2)
	var rdns []tlv.Element
	for i := 0; i < len(pairs); i += 2 {
		rdns = append(rdns, tlv.FromSet(tlv.FromSequence(
			oidElem(t, pairs[i]),
			tlv.FromUTF8String(pairs[i+1]),
		)))
	}
	return tlv.FromSequence(rdns...)
}

// extension builds an Extension with an optional critical flag.
func extension(t *testing.T, dotted string, critical *bool, payload []byte) tlv.Element {
	t.Helper()
	parts := []tlv.Element{oidElem(t, dotted)}
	if critical != nil {
		parts = append(parts, tlv.FromBool(*critical))
	}
	parts = append(parts, tlv.FromOctetString(payload))
	return tlv.FromSequence(parts...)
}

func ptr[T any](v T) *T { return &v }

func defaultTemplate(t *testing.T) certTemplate {
	t.Helper()
	name := dn(t, oid.CommonName, "example.com", oid.Organization, "Example")
	return certTemplate{
		version:   3,
		serial:    tlv.FromUnsignedInteger(0x1234),
		issuer:    name,
		subject:   name,
		notBefore: tlv.FromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		notAfter:  tlv.FromTime(time.Date(2034, 1, 1, 0, 0, 0, 0, time.UTC)),
		keyOID:    oid.RSAEncryption,
		extensions: []tlv.Element{
			extension(t, oid.BasicConstraints, ptr(true), tlv.FromSequence(tlv.FromBool(true)).Encode()),
			extension(t, oid.SubjectAltName, nil, tlv.FromSequence(
				tlv.New(0x82, []byte("example.com")),
			).Encode()),
		},
	}
}

// build encodes ct as a complete Certificate with a dummy signature.
func (ct certTemplate) build(t *testing.T) []byte {
	t.Helper()
	sigAlg := tlv.FromSequence(oidElem(t, "1.2.840.113549.1.1.11"), tlv.FromNull())

	var tbs []tlv.Element
	if ct.version > 0 {
		tbs = append(tbs, tlv.Wrap(tlv.ContextSpecific(0, true), tlv.FromUnsignedInteger(uint64(ct.version-1))))
	}
	var validity []tlv.Element
	for _, d := range []tlv.Element{ct.notBefore, ct.notAfter} {
		if d.Tag() != 0 {
			validity = append(validity, d)
		}
	}
	tbs = append(tbs,
		ct.serial,
		sigAlg,
		ct.issuer,
		tlv.FromSequence(validity...),
		ct.subject,
		tlv.FromSequence(
			tlv.FromSequence(oidElem(t, ct.keyOID), tlv.FromNull()),
			tlv.New(tlv.TagBitString, []byte{0x00, 0x30, 0x00}),
		),
	)
	tbs = append(tbs, ct.trailing...)
	if ct.extensions != nil {
		tbs = append(tbs, tlv.Wrap(tlv.ContextSpecific(3, true), tlv.FromSequence(ct.extensions...)))
	}
	tbs = append(tbs, ct.afterExts...)

	return tlv.FromSequence(
		tlv.FromSequence(tbs...),
		sigAlg,
		tlv.New(tlv.TagBitString, []byte{0x00, 0xde, 0xad, 0xbe, 0xef}),
	).Encode()
}

var testRSAKey = sync.OnceValues(func() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 2048)
})

// selfSignedRSA issues a real self-signed v3 certificate with crypto/x509.
func selfSignedRSA(t *testing.T, mutate func(*x509.Certificate)) []byte {
	t.Helper()
	key, err := testRSAKey()
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(4242),
		Subject:               pkix.Name{CommonName: "example.com", Organization: []string{"Example"}},
		NotBefore:             time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		NotAfter:              time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC),
		BasicConstraintsValid: true,
		IsCA:                  false,
		DNSNames:              []string{"example.com"},
	}
	if mutate != nil {
		mutate(tmpl)
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return der
}

// googleDER returns the www.google.com leaf from testdata.
func googleDER(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "www.google.com.pem"))
	require.NoError(t, err)
	block, _ := pem.Decode(data)
	require.NotNil(t, block)
	return block.Bytes
}
