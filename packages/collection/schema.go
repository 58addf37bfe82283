package collection

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// nativeSchema validates the native collection shape. Postman exports are
// converted before validation, so only one schema is needed.
const nativeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "requests": {"type": "array", "items": {"$ref": "#/definitions/request"}},
    "folders": {"type": "array", "items": {"$ref": "#/definitions/folder"}}
  },
  "definitions": {
    "folder": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "requests": {"type": "array", "items": {"$ref": "#/definitions/request"}},
        "folders": {"type": "array", "items": {"$ref": "#/definitions/folder"}}
      }
    },
    "request": {
      "type": "object",
      "required": ["name", "method", "url"],
      "properties": {
        "name": {"type": "string"},
        "method": {"type": "string", "enum": ["GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"]},
        "url": {"type": "string", "minLength": 1},
        "headers": {"type": "object", "additionalProperties": {"type": "string"}},
        "body": {"type": "string"},
        "script": {"type": "string"},
        "expectedStatus": {"type": "integer"}
      }
    }
  }
}`

// ValidateSchema checks collection JSON against the native schema and
// returns one error listing every violation. Postman exports are converted
// to the native shape first.
func ValidateSchema(data []byte) error {
	if isPostmanExport(data) {
		col, err := convertPostman(data)
		if err != nil {
			return fmt.Errorf("cannot parse collection: %w", err)
		}
		return col.Validate()
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(nativeSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("cannot validate collection: %w", err)
	}

	if !result.Valid() {
		var sb strings.Builder
		for _, desc := range result.Errors() {
			fmt.Fprintf(&sb, "\n  - %s: %s", desc.Field(), desc.Description())
		}
		return fmt.Errorf("invalid collection:%s", sb.String())
	}
	return nil
}
