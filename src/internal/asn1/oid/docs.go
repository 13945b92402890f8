// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package oid maps dotted [object identifiers] to the short display names used
// when printing X.500 names and X.509 extensions (for example "2.5.4.3" to "CN").
//
// The table is built once on first use and never modified afterwards, so
// lookups from any number of goroutines need no locking.
//
// [object identifiers]: https://grokipedia.com/page/Object_identifier
package oid
