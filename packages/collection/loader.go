package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// Load reads a collection file, converting from a Postman v2.1 export when
// the schema URL identifies one, and validates the resulting tree.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read collection: %w", err)
	}
	return Parse(data)
}

// Parse decodes collection JSON from either supported shape.
func Parse(data []byte) (*Collection, error) {
	var col *Collection
	var err error

	if isPostmanExport(data) {
		col, err = convertPostman(data)
	} else {
		col = &Collection{}
		err = json.Unmarshal(data, col)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse collection: %w", err)
	}

	if err := col.Validate(); err != nil {
		return nil, err
	}
	return col, nil
}

func isPostmanExport(data []byte) bool {
	schema := gjson.GetBytes(data, "info.schema").String()
	return strings.Contains(schema, "schema.getpostman.com")
}

// Validate checks the structural essentials the runner depends on.
func (c *Collection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("collection has no name")
	}
	var firstErr error
	c.Walk(func(req *Request) bool {
		if req.Method == "" {
			firstErr = fmt.Errorf("request %q has no method", req.Name)
			return false
		}
		if req.URL == "" {
			firstErr = fmt.Errorf("request %q has no url", req.Name)
			return false
		}
		return true
	})
	return firstErr
}
