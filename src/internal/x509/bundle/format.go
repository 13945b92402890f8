// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509bundle

import (
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strings"

	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
)

// FormatExtensionValue renders a decoded extension value on one line, in
// the style of openssl x509 -text. Raw values are printed as hex when
// rawHex is set and as a byte count otherwise.
func FormatExtensionValue(v x509der.ExtensionValue, rawHex bool) string {
	switch v := v.(type) {
	case x509der.BasicConstraints:
		s := "CA:FALSE"
		if v.CA {
			s = "CA:TRUE"
		}
		if v.HasPathLen {
			s += fmt.Sprintf(", pathlen:%d", v.PathLen)
		}
		return s

	case x509der.KeyIdentifier:
		return string(v)

	case x509der.AuthorityKeyID:
		var parts []string
		if v.HasKeyID {
			parts = append(parts, "keyid:"+v.KeyID)
		}
		if v.HasSerial {
			parts = append(parts, "serial:"+v.Serial)
		}
		return strings.Join(parts, ", ")

	case x509der.AuthorityInfoAccess:
		parts := make([]string, 0, len(v))
		for _, method := range slices.Sorted(maps.Keys(v)) {
			parts = append(parts, method+" - "+v[method])
		}
		return strings.Join(parts, ", ")

	case x509der.SubjectAltNames:
		parts := make([]string, 0, len(v))
		for _, n := range v {
			parts = append(parts, n.Type.String()+":"+n.Value)
		}
		return strings.Join(parts, ", ")

	case x509der.RawValue:
		if rawHex {
			return hex.EncodeToString(v)
		}
		return fmt.Sprintf("<%d bytes>", len(v))
	}
	return ""
}
