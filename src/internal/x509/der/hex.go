// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509der

import (
	"encoding/hex"
	"strings"
)

// colonHex formats b as lowercase colon-separated hex with leading zero
// bytes stripped, e.g. 00 8b 27 -> "8b:27". An all-zero input keeps its
// last byte so that a zero serial still prints as "00".
func colonHex(b []byte) string {
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteString(hex.EncodeToString([]byte{c}))
	}
	return sb.String()
}

// upperHex formats b as uppercase hex without separators.
func upperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
