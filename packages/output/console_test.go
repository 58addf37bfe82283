package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colrun/colrun/packages/runner"
	"github.com/colrun/colrun/packages/script"
)

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult(mixedRunResult())
	out := buf.String()

	assert.Contains(t, out, "Collection: api smoke")
	assert.Contains(t, out, "✓ GET list users [200, 40ms]")
	assert.Contains(t, out, "✗ POST create user [500, 25ms]")
	assert.Contains(t, out, "x DELETE delete user (connection refused)")
	assert.Contains(t, out, "✗ status is 201")
	assert.Contains(t, out, "expected 201 & got 500")
	assert.Contains(t, out, "Requests: 1 passed, 1 failed, 1 errors, 3 total")
	assert.Contains(t, out, "Time:     70ms")
}

func TestConsoleFormatter_SkippedInSummary(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatResult(&runner.RunResult{
		Collection: "bailed",
		Failures:   1,
		Skipped:    2,
		Results: []*runner.RequestResult{
			{
				Name:       "first",
				Method:     "GET",
				URL:        "http://x/1",
				StatusCode: 500,
				Tests: runner.TestResults{
					Total:    1,
					Failures: 1,
					Assertions: []*script.Assertion{
						{Name: "up", Passed: false, Message: "expected 200"},
					},
				},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "1 failed, 2 skipped, 3 total")
}

func TestConsoleFormatter_VerboseExpectedStatusNote(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatResult(&runner.RunResult{
		Collection: "hints",
		Passed:     1,
		Results: []*runner.RequestResult{
			{
				Name:           "create",
				Method:         "POST",
				URL:            "http://x/users",
				StatusCode:     200,
				ExpectedStatus: 201,
				Duration:       10 * time.Millisecond,
			},
		},
	})

	assert.Contains(t, buf.String(), "note: expected status 201, got 200")
}

func TestConsoleFormatter_VerboseLatency(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	f.FormatResult(mixedRunResult())

	assert.Contains(t, buf.String(), "Latency:")
}

func TestConsoleFormatter_FormatError(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	f.FormatError(assert.AnError)

	assert.Contains(t, buf.String(), "Error:")
}
