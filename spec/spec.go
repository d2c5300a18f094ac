// Package spec embeds the OpenAPI specification for the TripWeave API.
// It is imported by the HTTP server to serve the spec at /openapi.yaml.
// Serving it from the binary means the spec and the running code are always
// in sync.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
