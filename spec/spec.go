// Package spec embeds the OpenAPI document of the trip planner API.
// The server serves it at /openapi.yaml and oapi-codegen generates
// internal/handler/gen from it.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
