package config

import (
	"encoding/json"
	"fmt"
	"strings"

	schemaData "github.com/gopak/ytmsearch/schema"
	"github.com/xeipuuv/gojsonschema"
)

var configSchema = gojsonschema.NewBytesLoader(schemaData.Bytes)

// ValidateAgainstSchema checks the merged configuration against the
// embedded JSON Schema. Each violation is reported as "<field>: <reason>".
func ValidateAgainstSchema(cfg Config) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	res, err := gojsonschema.Validate(configSchema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	if res.Valid() {
		return nil
	}
	problems := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		problems = append(problems, e.Field()+": "+e.Description())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
