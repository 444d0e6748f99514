package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed catalog.schema.json
var catalogSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(catalogSchema)

// checkSchema validates a JSON catalog document against the embedded schema.
// It reports every violation in one error so a broken catalog can be fixed in one pass.
func checkSchema(document []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("catalog does not match schema: %s", strings.Join(msgs, "; "))
}
