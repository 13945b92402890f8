// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509bundle_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	x509bundle "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/bundle"
	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

var (
	jan2025 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2026 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

type issued struct {
	der    []byte
	parsed *x509.Certificate
	key    crypto.Signer
}

// issue signs tmpl with parent, or self-signs it when parent is nil.
func issue(t *testing.T, tmpl *x509.Certificate, parent *issued) *issued {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	signerCert, signerKey := tmpl, crypto.Signer(key)
	if parent != nil {
		signerCert, signerKey = parent.parsed, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signerCert, key.Public(), signerKey)
	require.NoError(t, err)
	parsed, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return &issued{der: der, parsed: parsed, key: key}
}

func caTemplate(serial int64, cn string, notAfter time.Time) *x509.Certificate {
	return &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: cn, Organization: []string{"Example"}},
		NotBefore:             jan2025,
		NotAfter:              notAfter,
		BasicConstraintsValid: true,
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
}

// testChain returns leaf, intermediate and root, in that order.
func testChain(t *testing.T) []*x509der.Certificate {
	t.Helper()
	root := issue(t, caTemplate(1, "Example Root", time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC)), nil)
	inter := issue(t, caTemplate(2, "Example Intermediate", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)), root)
	leaf := issue(t, &x509.Certificate{
		SerialNumber: big.NewInt(3),
		Subject:      pkix.Name{CommonName: "leaf.example.com"},
		NotBefore:    jan2025,
		NotAfter:     time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DNSNames:     []string{"leaf.example.com", "www.leaf.example.com"},
	}, inter)

	var out []*x509der.Certificate
	for _, c := range []*issued{leaf, inter, root} {
		dc, err := x509der.Decode(c.der)
		require.NoError(t, err)
		out = append(out, dc)
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBundleLinks(t *testing.T) {
	certs := testChain(t)

	tests := []struct {
		name     string
		certs    []*x509der.Certificate
		testFunc func(t *testing.T, b *x509bundle.Bundle)
	}{
		{
			name:  "Leaf First",
			certs: certs,
			testFunc: func(t *testing.T, b *x509bundle.Bundle) {
				assert.Equal(t, 1, b.IssuerIndex(0))
				assert.Equal(t, 2, b.IssuerIndex(1))
				assert.Equal(t, -1, b.IssuerIndex(2))
			},
		},
		{
			name:  "Root First",
			certs: []*x509der.Certificate{certs[2], certs[1], certs[0]},
			testFunc: func(t *testing.T, b *x509bundle.Bundle) {
				assert.Equal(t, -1, b.IssuerIndex(0))
				assert.Equal(t, 0, b.IssuerIndex(1))
				assert.Equal(t, 1, b.IssuerIndex(2))
			},
		},
		{
			name:  "Missing Intermediate",
			certs: []*x509der.Certificate{certs[0], certs[2]},
			testFunc: func(t *testing.T, b *x509bundle.Bundle) {
				assert.Equal(t, -1, b.IssuerIndex(0))
				assert.Equal(t, -1, b.IssuerIndex(1))
			},
		},
		{
			name:  "Roles",
			certs: certs,
			testFunc: func(t *testing.T, b *x509bundle.Bundle) {
				assert.Equal(t, "End-Entity Certificate", b.Role(0))
				assert.Equal(t, "Intermediate CA Certificate", b.Role(1))
				assert.Equal(t, "Root CA Certificate", b.Role(2))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := x509bundle.New(tt.certs, x509bundle.WithClock(fixedClock(jan2026)))
			assert.Equal(t, len(tt.certs), b.Len())
			tt.testFunc(t, b)
		})
	}
}

func TestBundleSelfSignedLeaf(t *testing.T) {
	self := issue(t, &x509.Certificate{
		SerialNumber: big.NewInt(9),
		Subject:      pkix.Name{CommonName: "self.example.com"},
		NotBefore:    jan2025,
		NotAfter:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	c, err := x509der.Decode(self.der)
	require.NoError(t, err)

	b := x509bundle.New([]*x509der.Certificate{c})
	assert.Equal(t, "Self-Signed Certificate", b.Role(0))
	assert.Equal(t, -1, b.IssuerIndex(0))
}

func TestBundleStatus(t *testing.T) {
	certs := testChain(t)

	tests := []struct {
		name  string
		opts  []x509bundle.Option
		index int
		want  string
	}{
		{name: "Valid", opts: []x509bundle.Option{x509bundle.WithClock(fixedClock(jan2026))}, index: 2, want: x509bundle.StatusValid},
		{name: "Expiring Soon", opts: []x509bundle.Option{x509bundle.WithClock(fixedClock(jan2026))}, index: 0, want: x509bundle.StatusExpiringSoon},
		{
			name:  "Warn Window Disabled",
			opts:  []x509bundle.Option{x509bundle.WithClock(fixedClock(jan2026)), x509bundle.WithWarnDays(0)},
			index: 0,
			want:  x509bundle.StatusValid,
		},
		{
			name:  "Negative Warn Days Ignored",
			opts:  []x509bundle.Option{x509bundle.WithClock(fixedClock(jan2026)), x509bundle.WithWarnDays(-5)},
			index: 0,
			want:  x509bundle.StatusExpiringSoon,
		},
		{
			name:  "Expired",
			opts:  []x509bundle.Option{x509bundle.WithClock(fixedClock(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)))},
			index: 1,
			want:  x509bundle.StatusExpired,
		},
		{
			name:  "Not Yet Valid",
			opts:  []x509bundle.Option{x509bundle.WithClock(fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))},
			index: 2,
			want:  x509bundle.StatusNotYetValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := x509bundle.New(certs, tt.opts...)
			assert.Equal(t, tt.want, b.Status(tt.index))
		})
	}
}

func TestRenderASCIITree(t *testing.T) {
	certs := testChain(t)

	t.Run("Chain", func(t *testing.T) {
		b := x509bundle.New(certs, x509bundle.WithClock(fixedClock(jan2026)))
		want := "└── [✓] Example Root (Root CA Certificate)\n" +
			"    └── [✓] Example Intermediate (Intermediate CA Certificate)\n" +
			"        └── [!] leaf.example.com (End-Entity Certificate)\n"
		assert.Equal(t, want, b.RenderASCIITree())
	})

	t.Run("Two Roots", func(t *testing.T) {
		b := x509bundle.New([]*x509der.Certificate{certs[0], certs[2]}, x509bundle.WithClock(fixedClock(jan2026)))
		want := "├── [!] leaf.example.com (End-Entity Certificate)\n" +
			"└── [✓] Example Root (Root CA Certificate)\n"
		assert.Equal(t, want, b.RenderASCIITree())
	})

	t.Run("Issuer Loop", func(t *testing.T) {
		// A and B name each other as issuer.
		// The two "B" certificates share a key identifier so that A's
		// authority key identifier matches either of them.
		signerTmpl := caTemplate(10, "B", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		signerTmpl.SubjectKeyId = []byte{0xbb}
		signer := issue(t, signerTmpl, nil)
		a := issue(t, caTemplate(11, "A", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)), signer)
		bTmpl := caTemplate(12, "B", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		bTmpl.SubjectKeyId = []byte{0xbb}
		b := issue(t, bTmpl, a)

		var loop []*x509der.Certificate
		for _, c := range []*issued{a, b} {
			dc, err := x509der.Decode(c.der)
			require.NoError(t, err)
			loop = append(loop, dc)
		}

		bundle := x509bundle.New(loop, x509bundle.WithClock(fixedClock(jan2026)))
		require.Equal(t, 1, bundle.IssuerIndex(0))
		require.Equal(t, 0, bundle.IssuerIndex(1))

		want := "└── [✓] A (Intermediate CA Certificate)\n" +
			"    └── [✓] B (Intermediate CA Certificate)\n"
		assert.Equal(t, want, bundle.RenderASCIITree())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "No certificates in bundle", x509bundle.New(nil).RenderASCIITree())
	})
}

func TestRenderTable(t *testing.T) {
	b := x509bundle.New(testChain(t), x509bundle.WithClock(fixedClock(jan2026)))
	out := b.RenderTable()

	assert.Contains(t, out, "|")
	assert.Contains(t, out, "leaf.example.com")
	assert.Contains(t, out, "Example Intermediate")
	assert.Contains(t, out, "Root CA Certificate")
	assert.Contains(t, out, "2026-01-10")
	assert.Contains(t, out, x509bundle.StatusExpiringSoon)

	assert.Equal(t, "No certificates to display", x509bundle.New(nil).RenderTable())
}

func TestRenderText(t *testing.T) {
	b := x509bundle.New(testChain(t), x509bundle.WithClock(fixedClock(jan2026)))
	out := b.RenderText()

	assert.Contains(t, out, "Certificate 1 of 3 (End-Entity Certificate)")
	assert.Contains(t, out, "Certificate 3 of 3 (Root CA Certificate)")
	assert.Contains(t, out, "    Serial Number: 03\n")
	assert.Contains(t, out, "    Issuer: O=Example, CN=Example Intermediate\n")
	assert.Contains(t, out, "        Not After : 2026-01-10 00:00:00 UTC\n")
	assert.Contains(t, out, "basicConstraints (critical): CA:TRUE")
	assert.Contains(t, out, "subjectAltName: DNS:leaf.example.com, DNS:www.leaf.example.com")
	assert.Contains(t, out, "keyUsage (critical): <4 bytes>")
	assert.Contains(t, out, "SHA-256 Fingerprint: ")
	assert.Equal(t, 3, strings.Count(out, "Public Key Algorithm: Unknown"))

	assert.Equal(t, "No certificates in bundle\n", x509bundle.New(nil).RenderText())
}

const reportSchema = `{
  "type": "object",
  "required": ["timestamp", "count", "certificates", "relationships"],
  "properties": {
    "timestamp": {"type": "string"},
    "count": {"type": "integer", "minimum": 0},
    "certificates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["index", "role", "version", "serialNumber", "subject", "issuer",
                     "status", "publicKeyAlgorithm", "isCA", "selfSigned", "extensions",
                     "sha256Fingerprint"],
        "properties": {
          "index": {"type": "integer"},
          "version": {"type": "integer", "minimum": 1, "maximum": 3},
          "serialNumber": {"type": "string", "pattern": "^[0-9a-f]{2}(:[0-9a-f]{2})*$"},
          "subject": {"type": "array", "items": {"$ref": "#/definitions/attribute"}},
          "issuer": {"type": "array", "items": {"$ref": "#/definitions/attribute"}},
          "notBefore": {"type": "string"},
          "notAfter": {"type": "string"},
          "status": {"enum": ["valid", "expiring soon", "expired", "not yet valid", "unknown"]},
          "publicKeyAlgorithm": {"enum": ["RSA", "DSA", "Unknown"]},
          "isCA": {"type": "boolean"},
          "selfSigned": {"type": "boolean"},
          "dnsNames": {"type": "array", "items": {"type": "string"}},
          "extensions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["oid", "name", "critical", "supported", "value"],
              "properties": {
                "oid": {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)+$"},
                "critical": {"type": "boolean"},
                "supported": {"type": "boolean"},
                "value": {"type": "string"}
              }
            }
          },
          "sha256Fingerprint": {"type": "string", "pattern": "^[0-9A-F]{2}(:[0-9A-F]{2}){31}$"}
        }
      }
    },
    "relationships": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["fromIndex", "toIndex", "type"],
        "properties": {"type": {"enum": ["issued_by"]}}
      }
    }
  },
  "definitions": {
    "attribute": {
      "type": "object",
      "required": ["type", "value"],
      "properties": {"type": {"type": "string"}, "value": {"type": "string"}}
    }
  }
}`

func TestToJSON(t *testing.T) {
	b := x509bundle.New(testChain(t), x509bundle.WithClock(fixedClock(jan2026)))

	out, err := b.ToJSON()
	require.NoError(t, err)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reportSchema),
		gojsonschema.NewBytesLoader(out),
	)
	require.NoError(t, err)
	for _, e := range result.Errors() {
		t.Errorf("schema: %s", e)
	}
	assert.True(t, result.Valid())

	var report x509bundle.Report
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, "2026-01-01T00:00:00Z", report.Timestamp)
	assert.Equal(t, 3, report.Count)
	assert.Equal(t, []x509bundle.Relationship{
		{FromIndex: 0, ToIndex: 1, Type: "issued_by"},
		{FromIndex: 1, ToIndex: 2, Type: "issued_by"},
	}, report.Relationships)
	assert.Equal(t, []string{"leaf.example.com", "www.leaf.example.com"}, report.Certificates[0].DNSNames)
	assert.Equal(t, "03", report.Certificates[0].SerialNumber)
}

func TestToJSONEmpty(t *testing.T) {
	out, err := x509bundle.New(nil).ToJSON()
	require.NoError(t, err)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(reportSchema),
		gojsonschema.NewBytesLoader(out),
	)
	require.NoError(t, err)
	assert.True(t, result.Valid())
}

func TestToYAML(t *testing.T) {
	b := x509bundle.New(testChain(t), x509bundle.WithClock(fixedClock(jan2026)))

	out, err := b.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "sha256Fingerprint:")

	var report x509bundle.Report
	require.NoError(t, yaml.Unmarshal(out, &report))
	assert.Equal(t, 3, report.Count)
	require.Len(t, report.Certificates, 3)
	assert.Equal(t, "Root CA Certificate", report.Certificates[2].Role)
	require.NotNil(t, report.Certificates[2].NotAfter)
	assert.Equal(t, 2035, report.Certificates[2].NotAfter.Year())
}

func TestFormatExtensionValue(t *testing.T) {
	tests := []struct {
		name   string
		value  x509der.ExtensionValue
		rawHex bool
		want   string
	}{
		{name: "CA With PathLen", value: x509der.BasicConstraints{CA: true, PathLen: 2, HasPathLen: true}, want: "CA:TRUE, pathlen:2"},
		{name: "Not CA", value: x509der.BasicConstraints{}, want: "CA:FALSE"},
		{name: "Key Identifier", value: x509der.KeyIdentifier("ABCD"), want: "ABCD"},
		{
			name:  "Authority Key ID",
			value: x509der.AuthorityKeyID{KeyID: "ABCD", HasKeyID: true, Serial: "01:02", HasSerial: true},
			want:  "keyid:ABCD, serial:01:02",
		},
		{
			name:  "Access Methods Sorted",
			value: x509der.AuthorityInfoAccess{"caIssuers": "http://c", "OCSP": "http://o"},
			want:  "OCSP - http://o, caIssuers - http://c",
		},
		{
			name: "Alt Names",
			value: x509der.SubjectAltNames{
				{Type: x509der.AltNameDNS, Value: "example.com"},
				{Type: x509der.AltNameEmail, Value: "a@example.com"},
			},
			want: "DNS:example.com, Email:a@example.com",
		},
		{name: "Raw Count", value: x509der.RawValue{1, 2, 3}, want: "<3 bytes>"},
		{name: "Raw Hex", value: x509der.RawValue{0xab, 0x01}, rawHex: true, want: "ab01"},
		{name: "Nil", value: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x509bundle.FormatExtensionValue(tt.value, tt.rawHex))
		})
	}
}
