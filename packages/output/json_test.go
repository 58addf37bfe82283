package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colrun/colrun/packages/runner"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	f.FormatResult(mixedRunResult())
	require.NoError(t, f.Flush(70*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "api smoke", out.Collection)
	assert.Equal(t, 3, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Passed)
	assert.Equal(t, 1, out.Summary.Failures)
	assert.Equal(t, 1, out.Summary.Errors)
	assert.Zero(t, out.Summary.Skipped)
	assert.Equal(t, float64(70), out.Duration)
	assert.NotEmpty(t, out.Time)

	require.Len(t, out.Requests, 3)

	assert.Equal(t, "list users", out.Requests[0].Name)
	assert.Equal(t, 200, out.Requests[0].Status)
	assert.Equal(t, 2, out.Requests[0].Tests.Total)
	assert.Empty(t, out.Requests[0].Error)

	assert.Equal(t, 1, out.Requests[1].Tests.Failures)
	require.Len(t, out.Requests[1].Tests.Assertions, 2)
	assert.False(t, out.Requests[1].Tests.Assertions[0].Passed)
	assert.Equal(t, "expected 201 & got 500", out.Requests[1].Tests.Assertions[0].Message)

	assert.Equal(t, "connection refused", out.Requests[2].Error)
	assert.Zero(t, out.Requests[2].Status)
	assert.Zero(t, out.Requests[2].Tests.Total)
}

func TestSummarizeLatency(t *testing.T) {
	summary := SummarizeLatency(mixedRunResult())
	require.NotNil(t, summary)
	assert.Equal(t, 5*time.Millisecond, summary.Min)
	assert.Equal(t, 40*time.Millisecond, summary.Max)
	assert.GreaterOrEqual(t, summary.P95, summary.P50)
}

func TestSummarizeLatency_EmptyRun(t *testing.T) {
	assert.Nil(t, SummarizeLatency(&runner.RunResult{}))
}
