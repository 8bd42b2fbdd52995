// Package schemas embeds the JSON schemas used to validate configuration.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .socialcc.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
