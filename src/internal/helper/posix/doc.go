// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides [POSIX]-compliant helper functions for cross-platform compatibility.
//
// Key functions:
//   - GetExecutableName: Returns the executable name without extension for CLI usage
//
// # Usage Examples
//
//	rootCmd := &cobra.Command{
//	    Use:   posix.GetExecutableName() + " [FILE]",
//	    Short: "Inspect X.509 certificates at the DER level",
//	}
//
// Cross-Platform Behavior:
//
//   - Linux/macOS: "/usr/bin/x509-der-inspector" → "x509-der-inspector"
//   - Windows: "C:\bin\x509-der-inspector.exe" → "x509-der-inspector"
//   - Fallback: Empty args → "x509-der-inspector"
//
// [POSIX]: https://grokipedia.com/page/POSIX
package posix
