// Package asset carries the built-in desktop configuration
package asset

import _ "embed"

// DefaultConfigName is the name the embedded configuration is decoded under
const DefaultConfigName = "config.yaml"

// DefaultConfig is the stock desktop layout, used when no configuration file is found
//
//go:embed config.yaml
var DefaultConfig []byte
