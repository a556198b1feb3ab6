package inline

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// AsJson renders the status snapshot for scripted consumers.
func AsJson(status *Status) ([]byte, error) {
	return json.Marshal(status)
}

// SchemaJson renders the JSON Schema describing the status document, so
// scripted consumers can validate their expectations against it.
func SchemaJson() ([]byte, error) {
	schema := jsonschema.Reflect(&Status{})
	return json.MarshalIndent(schema, "", "  ")
}
