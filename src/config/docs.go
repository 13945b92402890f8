// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the inspector configuration from a JSON or YAML file.
//
// The file path comes from the --config flag or the X509_DER_CONFIG_FILE
// environment variable. Defaults are applied first, the file is merged on
// top and out-of-range values fall back to their defaults.
package config
