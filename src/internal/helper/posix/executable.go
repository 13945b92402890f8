// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"strings"
)

// FallbackName is returned by [GetExecutableName] when os.Args carries no
// program name.
const FallbackName = "x509-der-inspector"

// GetExecutableName returns the base name of os.Args[0] without a trailing
// ".exe", for use in usage strings.
//
// Both '/' and '\' are treated as separators regardless of the host OS, so a
// Windows path seen on a Unix system still yields the bare name.
//
// Returns:
//   - string: Clean executable name suitable for CLI usage
func GetExecutableName() string {
	if len(os.Args) == 0 {
		return FallbackName
	}

	name := strings.TrimRight(os.Args[0], `/\`)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, ".exe")

	if name == "" {
		return FallbackName
	}
	return name
}
