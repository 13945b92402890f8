// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/cfssl/crypto/pkcs7"

	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is neither CERTIFICATE nor PKCS7.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to decode the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrParsePKCS7 indicates a failure to parse PKCS7 formatted data.
	ErrParsePKCS7 = errors.New("x509certs: failed to parse PKCS7 data")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")
)

const (
	certBlockType  = "CERTIFICATE"
	pkcs7BlockType = "PKCS7"
)

// Certificate unwraps PEM, DER and PKCS7 input into decoded certificates
// and encodes decoded certificates back to PEM or DER.
type Certificate struct {
	certBlockType string
	decoder       *x509der.Decoder
}

// New creates a new Certificate that decodes with [x509der.DefaultLimits].
func New() *Certificate {
	return NewWithDecoder(x509der.NewDecoder(x509der.DefaultLimits()))
}

// NewWithDecoder creates a new Certificate that decodes with d.
func NewWithDecoder(d *x509der.Decoder) *Certificate {
	return &Certificate{
		certBlockType: certBlockType,
		decoder:       d,
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes the first PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType && block.Type != pkcs7BlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// Decode decodes a single certificate from data.
//
// PEM input is unwrapped first. Raw DER that is not a certificate is tried
// as a PKCS7 SignedData bundle, whose first certificate is returned.
//
// Parameters:
//   - data: PEM, DER or PKCS7 encoded input
//
// Returns:
//   - *x509der.Certificate: the decoded certificate
//   - error: one of the package sentinels, wrapping the decoder error when there is one
func (c *Certificate) Decode(data []byte) (*x509der.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}
		data = block.Bytes
	}

	cert, err := c.decoder.Decode(data)
	if err == nil {
		return cert, nil
	}

	certs, perr := c.fromPKCS7(data)
	if perr != nil {
		if errors.Is(perr, ErrParsePKCS7) {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		return nil, perr
	}
	return certs[0], nil
}

// DecodeMultiple decodes every certificate in data.
//
// PEM input may mix CERTIFICATE and PKCS7 blocks. DER input is decoded as
// back-to-back certificates, falling back to a PKCS7 bundle.
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509der.Certificate, error) {
	if c.IsPEM(data) {
		var certs []*x509der.Certificate

		for len(data) > 0 {
			block, rest := pem.Decode(data)
			if block == nil {
				break
			}

			switch block.Type {
			case c.certBlockType:
				cert, err := c.decoder.Decode(block.Bytes)
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
				}
				certs = append(certs, cert)
			case pkcs7BlockType:
				bundle, err := c.fromPKCS7(block.Bytes)
				if err != nil {
					return nil, err
				}
				certs = append(certs, bundle...)
			default:
				return nil, ErrInvalidBlockType
			}

			data = rest
		}

		return certs, nil
	}

	certs, err := c.decoder.DecodeAll(data)
	if err == nil {
		return certs, nil
	}
	if len(certs) == 0 {
		if bundle, perr := c.fromPKCS7(data); perr == nil {
			return bundle, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
}

// fromPKCS7 extracts the certificates of a PKCS7 SignedData bundle and
// decodes each one again from its raw bytes.
func (c *Certificate) fromPKCS7(data []byte) ([]*x509der.Certificate, error) {
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsePKCS7, err)
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	certs := make([]*x509der.Certificate, 0, len(p.Content.SignedData.Certificates))
	for _, sc := range p.Content.SignedData.Certificates {
		cert, err := c.decoder.Decode(sc.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseCertificate, err)
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509der.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.DER(),
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (c *Certificate) EncodeDER(cert *x509der.Certificate) []byte { return cert.DER() }

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509der.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}

// EncodeMultipleDER encodes multiple certificates to DER format.
func (c *Certificate) EncodeMultipleDER(certs []*x509der.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodeDER(cert)...)
	}

	return data
}
