// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package tlv implements decoding and encoding of single [DER] tag-length-value
// elements over in-memory byte slices.
//
// An [Element] is an immutable tag plus an owned copy of its content bytes.
// Decoding is a pure function of the input slice and an explicit offset, so
// any number of goroutines may decode unrelated (or the same) buffers
// concurrently without coordination.
//
// Only the DER subset needed for [X.509] certificates is supported: single-byte
// tags, definite lengths of at most seven length bytes, and non-negative
// integers. Indefinite-length BER encodings are rejected with
// [ErrUnsupportedEncoding].
//
// [DER]: https://grokipedia.com/page/X.690#der-encoding
// [X.509]: https://grokipedia.com/page/X.509
package tlv
