// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs handles the framing around [X.509] certificates. It
// accepts [PEM], raw DER and [PKCS7] input, hands the certificate bytes to
// the x509der structural decoder and encodes decoded certificates back to
// PEM or DER. The command line front end uses it to read its inputs.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
