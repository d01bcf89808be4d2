package schema

import _ "embed"

// Bytes holds the JSON Schema for the merged configuration.
//
//go:embed config.schema.json
var Bytes []byte
