// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509bundle presents a set of decoded certificates. It links each
// certificate to its issuer inside the set by comparing the raw issuer and
// subject Names (narrowed by the key identifiers when both are present) and
// renders the result as:
//   - a human readable text listing,
//   - an ASCII tree following the issued-by links,
//   - a markdown table,
//   - JSON or YAML for other tools.
//
// Nothing here verifies signatures; issued-by links are structural only.
package x509bundle
