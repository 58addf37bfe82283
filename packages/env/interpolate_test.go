package env

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	environment := Environment{
		"host":     "api.test",
		"token":    "secret",
		"user.id":  "42",
		"my_var":   "value",
		"greeting": "hello",
	}

	t.Run("basic substitution", func(t *testing.T) {
		result := Interpolate("{{host}}/users", environment)
		assert.Equal(t, "api.test/users", result)
	})

	t.Run("multiple placeholders", func(t *testing.T) {
		result := Interpolate("https://{{host}}/users/{{user.id}}", environment)
		assert.Equal(t, "https://api.test/users/42", result)
	})

	t.Run("dotted and underscored identifiers", func(t *testing.T) {
		assert.Equal(t, "42", Interpolate("{{user.id}}", environment))
		assert.Equal(t, "value", Interpolate("{{my_var}}", environment))
	})

	t.Run("unresolved placeholder left verbatim", func(t *testing.T) {
		result := Interpolate("{{missing}}", Environment{})
		assert.Equal(t, "{{missing}}", result)
	})

	t.Run("mixed resolved and unresolved", func(t *testing.T) {
		result := Interpolate("{{host}}/{{nope}}", environment)
		assert.Equal(t, "api.test/{{nope}}", result)
	})

	t.Run("substituted values are not re-scanned", func(t *testing.T) {
		looping := Environment{
			"a": "{{b}}",
			"b": "{{a}}",
		}
		result := Interpolate("{{a}}", looping)
		assert.Equal(t, "{{b}}", result)
	})

	t.Run("no placeholders", func(t *testing.T) {
		result := Interpolate("plain text", environment)
		assert.Equal(t, "plain text", result)
	})

	t.Run("empty template", func(t *testing.T) {
		assert.Equal(t, "", Interpolate("", environment))
	})
}

func TestInterpolate_DynamicVariables(t *testing.T) {
	t.Run("guid", func(t *testing.T) {
		result := Interpolate("{{$guid}}", Environment{})
		assert.Len(t, result, 36)
		assert.NotEqual(t, "{{$guid}}", result)
	})

	t.Run("timestamp", func(t *testing.T) {
		before := time.Now().Unix()
		result := Interpolate("{{$timestamp}}", Environment{})
		ts, err := strconv.ParseInt(result, 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ts, before)
	})

	t.Run("unknown dynamic left verbatim", func(t *testing.T) {
		result := Interpolate("{{$bogus}}", Environment{})
		assert.Equal(t, "{{$bogus}}", result)
	})

	t.Run("dynamic names never read the environment", func(t *testing.T) {
		result := Interpolate("{{$timestamp}}", Environment{"$timestamp": "overridden"})
		assert.NotEqual(t, "overridden", result)
	})
}

func TestInterpolateAll(t *testing.T) {
	environment := Environment{"token": "abc"}

	headers := map[string]string{
		"Authorization": "Bearer {{token}}",
		"Accept":        "application/json",
	}

	resolved := InterpolateAll(headers, environment)
	assert.Equal(t, "Bearer abc", resolved["Authorization"])
	assert.Equal(t, "application/json", resolved["Accept"])

	assert.Nil(t, InterpolateAll(nil, environment))
}

func TestUnresolved(t *testing.T) {
	environment := Environment{"host": "api.test"}

	names := Unresolved("{{host}}/{{missing}}/{{also.missing}}", environment)
	assert.Equal(t, []string{"missing", "also.missing"}, names)

	assert.Empty(t, Unresolved("{{host}}", environment))
	assert.Empty(t, Unresolved("{{$guid}}", environment))
}
