// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509bundle

import (
	"crypto"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

const dateLayout = "2006-01-02 15:04:05 MST"

// RenderText renders every certificate as an indented field listing.
//
// Returns:
//   - string: the listing, one block per certificate
//
// Thread Safety: Safe for concurrent use.
func (b *Bundle) RenderText() string {
	if len(b.Certs) == 0 {
		return "No certificates in bundle\n"
	}

	var sb strings.Builder
	for i, cert := range b.Certs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "Certificate %d of %d (%s)\n", i+1, len(b.Certs), b.Role(i))
		fmt.Fprintf(&sb, "    Version: %d\n", cert.Version())
		fmt.Fprintf(&sb, "    Serial Number: %s\n", cert.SerialNumberHex())
		fmt.Fprintf(&sb, "    Issuer: %s\n", cert.Issuer())
		sb.WriteString("    Validity:\n")
		fmt.Fprintf(&sb, "        Not Before: %s\n", formatDate(cert.NotBefore()))
		fmt.Fprintf(&sb, "        Not After : %s\n", formatDate(cert.NotAfter()))
		fmt.Fprintf(&sb, "        Status    : %s\n", b.Status(i))
		fmt.Fprintf(&sb, "    Subject: %s\n", cert.Subject())
		fmt.Fprintf(&sb, "    Public Key Algorithm: %s\n", cert.PublicKeyAlgorithm())

		if exts := cert.Extensions(); len(exts) > 0 {
			sb.WriteString("    Extensions:\n")
			for _, ext := range exts {
				critical := ""
				if ext.Critical {
					critical = " (critical)"
				}
				fmt.Fprintf(&sb, "        %s%s: %s\n", ext.Name, critical, FormatExtensionValue(ext.Value, false))
			}
		}

		if fp, err := cert.Fingerprint(crypto.SHA256); err == nil {
			fmt.Fprintf(&sb, "    SHA-256 Fingerprint: %s\n", fp)
		}
	}
	return sb.String()
}

func formatDate(t time.Time, ok bool) string {
	if !ok {
		return "(absent)"
	}
	return t.UTC().Format(dateLayout)
}

// RenderASCIITree renders the bundle as a tree that follows the issued-by
// links. Certificates whose issuer is not in the bundle start a new root.
//
// Returns:
//   - string: ASCII tree representation of the bundle
//
// Thread Safety: Safe for concurrent use.
func (b *Bundle) RenderASCIITree() string {
	if len(b.Certs) == 0 {
		return "No certificates in bundle"
	}

	children := make([][]int, len(b.Certs))
	var roots []int
	for i := range b.Certs {
		if p := b.issuers[i]; p >= 0 {
			children[p] = append(children[p], i)
		} else {
			roots = append(roots, i)
		}
	}

	var result strings.Builder
	visited := make([]bool, len(b.Certs))

	var walk func(i int, prefix string, isLast bool)
	walk = func(i int, prefix string, isLast bool) {
		visited[i] = true

		connector, next := "├── ", "│   "
		if isLast {
			connector, next = "└── ", "    "
		}

		status := b.Status(i)
		fmt.Fprintf(&result, "%s%s[%s] %s (%s)\n", prefix, connector,
			statusIcon(status), displayName(b.Certs[i].Subject()), b.Role(i))

		var pending []int
		for _, c := range children[i] {
			if !visited[c] {
				pending = append(pending, c)
			}
		}
		for k, c := range pending {
			walk(c, prefix+next, k == len(pending)-1)
		}
	}

	// Issuer loops (cross-signed pairs) have no root; each loop is entered
	// at its lowest index.
	reached := make([]bool, len(b.Certs))
	var mark func(i int)
	mark = func(i int) {
		if reached[i] {
			return
		}
		reached[i] = true
		for _, c := range children[i] {
			mark(c)
		}
	}
	for _, r := range roots {
		mark(r)
	}
	for i := range b.Certs {
		if !reached[i] {
			roots = append(roots, i)
			mark(i)
		}
	}

	for k, r := range roots {
		walk(r, "", k == len(roots)-1)
	}

	return result.String()
}

// RenderTable renders the bundle as a formatted markdown table.
//
// It displays role, subject, issuer, expiry date, key algorithm and
// validity status per certificate using tablewriter.
//
// Returns:
//   - string: Markdown table representation of the bundle
//
// Thread Safety: Safe for concurrent use.
func (b *Bundle) RenderTable() string {
	if len(b.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	headers := []string{"🔢 #", "🏷️ Role", "📛 Subject", "🏢 Issuer", "📅 Valid Until", "🔐 Key", "✅ Status"}
	table.Header(headers)

	var rows [][]string
	for i, cert := range b.Certs {
		validUntil := "unknown"
		if t, ok := cert.NotAfter(); ok {
			validUntil = t.Format("2006-01-02")
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			b.Role(i),
			displayName(cert.Subject()),
			displayName(cert.Issuer()),
			validUntil,
			cert.PublicKeyAlgorithm().String(),
			b.Status(i),
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// Report is the structured form of a bundle used by [Bundle.ToJSON] and
// [Bundle.ToYAML].
type Report struct {
	Timestamp     string            `json:"timestamp" yaml:"timestamp"`
	Count         int               `json:"count" yaml:"count"`
	Certificates  []CertificateData `json:"certificates" yaml:"certificates"`
	Relationships []Relationship    `json:"relationships" yaml:"relationships"`
}

// CertificateData describes one certificate in a [Report].
type CertificateData struct {
	Index              int             `json:"index" yaml:"index"`
	Role               string          `json:"role" yaml:"role"`
	Version            int             `json:"version" yaml:"version"`
	SerialNumber       string          `json:"serialNumber" yaml:"serialNumber"`
	Subject            x509der.Name    `json:"subject" yaml:"subject"`
	Issuer             x509der.Name    `json:"issuer" yaml:"issuer"`
	NotBefore          *time.Time      `json:"notBefore,omitempty" yaml:"notBefore,omitempty"`
	NotAfter           *time.Time      `json:"notAfter,omitempty" yaml:"notAfter,omitempty"`
	Status             string          `json:"status" yaml:"status"`
	PublicKeyAlgorithm string          `json:"publicKeyAlgorithm" yaml:"publicKeyAlgorithm"`
	IsCA               bool            `json:"isCA" yaml:"isCA"`
	SelfSigned         bool            `json:"selfSigned" yaml:"selfSigned"`
	DNSNames           []string        `json:"dnsNames,omitempty" yaml:"dnsNames,omitempty"`
	EmailAddresses     []string        `json:"emailAddresses,omitempty" yaml:"emailAddresses,omitempty"`
	Extensions         []ExtensionData `json:"extensions" yaml:"extensions"`
	SHA256Fingerprint  string          `json:"sha256Fingerprint" yaml:"sha256Fingerprint"`
}

// ExtensionData describes one extension in a [Report].
type ExtensionData struct {
	OID       string `json:"oid" yaml:"oid"`
	Name      string `json:"name" yaml:"name"`
	Critical  bool   `json:"critical" yaml:"critical"`
	Supported bool   `json:"supported" yaml:"supported"`
	Value     string `json:"value" yaml:"value"`
}

// Relationship links a certificate to its issuer inside the bundle.
type Relationship struct {
	FromIndex int    `json:"fromIndex" yaml:"fromIndex"`
	ToIndex   int    `json:"toIndex" yaml:"toIndex"`
	Type      string `json:"type" yaml:"type"`
}

// Report builds the structured form of the bundle.
//
// Thread Safety: Safe for concurrent use.
func (b *Bundle) Report() Report {
	data := Report{
		Timestamp:     b.now().UTC().Format(time.RFC3339),
		Count:         len(b.Certs),
		Certificates:  make([]CertificateData, len(b.Certs)),
		Relationships: []Relationship{},
	}

	for i, cert := range b.Certs {
		cd := CertificateData{
			Index:              i,
			Role:               b.Role(i),
			Version:            cert.Version(),
			SerialNumber:       cert.SerialNumberHex(),
			Subject:            nonNilName(cert.Subject()),
			Issuer:             nonNilName(cert.Issuer()),
			Status:             b.Status(i),
			PublicKeyAlgorithm: cert.PublicKeyAlgorithm().String(),
			IsCA:               cert.IsCA(),
			SelfSigned:         cert.IsSelfSigned(),
			DNSNames:           cert.DNSNames(),
			EmailAddresses:     cert.EmailAddresses(),
			Extensions:         []ExtensionData{},
		}
		if t, ok := cert.NotBefore(); ok {
			cd.NotBefore = &t
		}
		if t, ok := cert.NotAfter(); ok {
			cd.NotAfter = &t
		}
		for _, ext := range cert.Extensions() {
			cd.Extensions = append(cd.Extensions, ExtensionData{
				OID:       ext.OID,
				Name:      ext.Name,
				Critical:  ext.Critical,
				Supported: ext.Supported,
				Value:     FormatExtensionValue(ext.Value, true),
			})
		}
		cd.SHA256Fingerprint, _ = cert.Fingerprint(crypto.SHA256)
		data.Certificates[i] = cd

		if p := b.issuers[i]; p >= 0 {
			data.Relationships = append(data.Relationships, Relationship{
				FromIndex: i,
				ToIndex:   p,
				Type:      "issued_by",
			})
		}
	}
	return data
}

func nonNilName(n x509der.Name) x509der.Name {
	if n == nil {
		return x509der.Name{}
	}
	return n
}

// ToJSON converts the bundle to indented JSON.
//
// Returns:
//   - []byte: JSON representation of the bundle
//   - error: Error if JSON marshaling fails
func (b *Bundle) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b.Report(), "", "  ")
}

// ToYAML converts the bundle to YAML.
func (b *Bundle) ToYAML() ([]byte, error) {
	return yaml.Marshal(b.Report())
}
