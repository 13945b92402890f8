// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-der-inspector is a command-line tool that decodes X.509 certificates
// at the DER level and prints their structure.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-der-inspector/cmd/x509-der-inspector@latest
//
// # Usage
//
//	x509-der-inspector [FILE] [FLAGS]
//	x509-der-inspector dump [FILE] [FLAGS]
//	x509-der-inspector oid [DOTTED...]
//
// FILE may hold PEM (any number of CERTIFICATE or PKCS7 blocks), raw
// concatenated DER, or a DER PKCS#7 bundle. Standard input is read when FILE
// is omitted or "-".
//
// # Flags
//
//	-f, --format      Output format: text, tree, table, json, yaml, pem, der (default: text)
//	-o, --output      Destination file (default: stdout)
//	-c, --config      Configuration file, JSON or YAML
//	    --max-depth   Maximum nesting depth while decoding (default: 32)
//	    --max-length  Maximum bytes decoded per certificate (default: 16 MiB)
//	    --warn-days   Flag certificates expiring within this many days (default: 30)
//	    --log-json    Write progress messages as JSON lines
//	-q, --quiet       Suppress progress messages
//
// # Environment Variables
//
//	X509_DER_CONFIG_FILE  Path to configuration file (alternative to --config flag)
//
// # Examples
//
// Print a certificate chain as an ASCII tree:
//
//	x509-der-inspector --format tree chain.pem
//
// Produce a JSON report from a PKCS#7 bundle:
//
//	x509-der-inspector -f json -o report.json bundle.p7b
//
// Dump the TLV structure of a DER file:
//
//	x509-der-inspector dump cert.der
//
// Look up object identifiers:
//
//	x509-der-inspector oid 2.5.4.3 1.3.6.1.5.5.7.1.1
package main
