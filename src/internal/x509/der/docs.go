// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509der decodes the structure of DER-encoded [X.509] certificates
// into immutable [Certificate] values.
//
// The decoder walks the TBSCertificate with the [tlv] codec and extracts the
// version, serial number, issuer and subject names, validity period, public
// key algorithm and bytes, and the extensions block. The basicConstraints,
// subjectKeyIdentifier, authorityKeyIdentifier, authorityInfoAccess and
// subjectAltName extensions are decoded into typed values; every other
// extension is kept as raw bytes and marked unsupported.
//
// It does not verify signatures, build chains, or strip PEM armor. Callers
// hand it bytes that start exactly at the Certificate SEQUENCE.
//
// # Errors
//
// A failure at a mandatory position (the outer and TBSCertificate SEQUENCEs,
// serial number, issuer, subject, subjectPublicKeyInfo, or the inner shape of
// one of the five known extensions) aborts the whole decode; no partially
// populated [Certificate] is ever returned. Problems at optional positions
// (validity dates, malformed RDNs, unknown extensions, trailing elements after
// the extensions) are absorbed. Errors wrap [ErrTruncatedInput],
// [ErrMalformedStructure], [ErrUnsupportedEncoding], [ErrDepthExceeded] or
// [ErrLengthExceeded] and can be tested with [errors.Is].
//
// # Concurrency
//
// Decoding keeps all state on the stack of the call, so a [Decoder] may be
// used from any number of goroutines at once.
//
// [X.509]: https://grokipedia.com/page/X.509
// [tlv]: https://pkg.go.dev/github.com/H0llyW00dzZ/x509-der-inspector/src/internal/asn1/tlv
package x509der
