package env

import (
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Placeholder identifiers are word characters, dot and underscore. A
// leading $ marks a dynamic variable generated at resolution time.
var placeholderPattern = regexp.MustCompile(`\{\{(\$?[\w.]+)\}\}`)

// Interpolate replaces each {{name}} placeholder with the environment's
// value for name. Unresolved placeholders are left verbatim so a typo'd
// variable stays visible instead of silently becoming empty. The scan is a
// single pass: substituted values are never re-scanned, so a value
// containing {{...}} cannot trigger chained expansion.
func Interpolate(template string, env Environment) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]

		if name[0] == '$' {
			if val, ok := dynamicValue(name); ok {
				return val
			}
			return match
		}

		if val, ok := env[name]; ok {
			return val
		}
		return match
	})
}

// InterpolateAll resolves every value of a header map.
func InterpolateAll(values map[string]string, env Environment) map[string]string {
	if values == nil {
		return nil
	}
	result := make(map[string]string, len(values))
	for k, v := range values {
		result[k] = Interpolate(v, env)
	}
	return result
}

// Unresolved returns the placeholder names left in a template after
// interpolation, for verbose diagnostics.
func Unresolved(template string, env Environment) []string {
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		name := m[1]
		if name[0] == '$' {
			if _, ok := dynamicValue(name); ok {
				continue
			}
		} else if _, ok := env[name]; ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

// dynamicValue generates Postman-style dynamic variables.
func dynamicValue(name string) (string, bool) {
	switch name {
	case "$guid", "$uuid":
		return uuid.NewString(), true
	case "$timestamp":
		return strconv.FormatInt(time.Now().Unix(), 10), true
	case "$randomInt":
		return strconv.Itoa(rand.Intn(1000)), true
	}
	return "", false
}
