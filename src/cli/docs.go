// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 DER inspector.
// It implements a Cobra-based CLI with three commands:
//
//   - the root command decodes certificates from PEM, DER or PKCS#7 input and
//     renders them as text, an ASCII tree, a markdown table, JSON, YAML, or
//     re-encoded PEM/DER
//   - dump prints the raw TLV tree of the input
//   - oid looks up object identifiers in the registry
//
// Decoder limits and output settings come from the configuration file (see
// package config) and can be overridden per invocation with flags. Progress
// messages go through the logger package; rendered output goes to stdout or
// the --output file.
package cli
