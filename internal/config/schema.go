package config

import (
	"encoding/json"
	"fmt"

	pkgconfig "github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the configuration file.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		FieldNameTag:               "json",
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(&pkgconfig.Config{})
	schema.Title = "HeaderIndexor configuration"

	return schema
}

// SchemaJSON returns the indented JSON encoding of the configuration schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config schema: %w", err)
	}

	return data, nil
}
