package env

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment is the flat variable mapping used for interpolation. It is
// loaded once and read-only for the duration of a run.
type Environment map[string]string

// record is one entry of the list-shaped JSON format. Entries with
// enabled explicitly false are dropped; a missing enabled field applies.
type record struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// postmanEnvExport is the wrapper shape Postman writes around its record
// list (its exports use "values" and per-entry "key"/"value"/"enabled").
type postmanEnvExport struct {
	Name   string   `json:"name"`
	Values []record `json:"values"`
}

// LoadFile loads an environment from a file, choosing the parser by
// extension: .env via dotenv, .yaml/.yml via YAML, anything else as JSON.
func LoadFile(path string) (Environment, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".env":
		vars, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read env file: %w", err)
		}
		return Environment(vars), nil
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadJSON(path)
	}
}

func loadYAML(path string) (Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file: %w", err)
	}

	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse env file: %w", err)
	}

	env := make(Environment, len(raw))
	for k, v := range raw {
		env[k] = fmt.Sprintf("%v", v)
	}
	return env, nil
}

func loadJSON(path string) (Environment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file: %w", err)
	}

	env, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse env file: %w", err)
	}
	return env, nil
}

// ParseJSON accepts the three JSON shapes in the wild: a flat string map,
// a bare record list, or a Postman environment export.
func ParseJSON(data []byte) (Environment, error) {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err == nil {
		return Environment(flat), nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err == nil {
		return fromRecords(records), nil
	}

	var export postmanEnvExport
	if err := json.Unmarshal(data, &export); err == nil && export.Values != nil {
		return fromRecords(export.Values), nil
	}

	return nil, fmt.Errorf("unrecognized environment format")
}

func fromRecords(records []record) Environment {
	env := make(Environment, len(records))
	for _, r := range records {
		if r.Enabled != nil && !*r.Enabled {
			continue
		}
		env[r.Key] = r.Value
	}
	return env
}
