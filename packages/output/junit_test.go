package output

import (
	"bytes"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colrun/colrun/packages/runner"
	"github.com/colrun/colrun/packages/script"
)

func mixedRunResult() *runner.RunResult {
	return &runner.RunResult{
		Collection: "api smoke",
		Passed:     1,
		Failures:   1,
		Errors:     1,
		Results: []*runner.RequestResult{
			{
				Name:       "list users",
				Method:     "GET",
				URL:        "http://api.local/users",
				StatusCode: 200,
				Duration:   40 * time.Millisecond,
				Tests: runner.TestResults{
					Total: 2,
					Assertions: []*script.Assertion{
						{Name: "status is 200", Passed: true},
						{Name: "has users", Passed: true},
					},
				},
			},
			{
				Name:       "create user",
				Method:     "POST",
				URL:        "http://api.local/users",
				StatusCode: 500,
				Duration:   25 * time.Millisecond,
				Tests: runner.TestResults{
					Total:    2,
					Failures: 1,
					Assertions: []*script.Assertion{
						{Name: "status is 201", Passed: false, Message: "expected 201 & got 500"},
						{Name: "json body", Passed: true},
					},
				},
			},
			{
				Name:     "delete user",
				Method:   "DELETE",
				URL:      "http://api.local/users/1",
				Duration: 5 * time.Millisecond,
				Error:    errors.New("connection refused"),
			},
		},
		Duration: 70 * time.Millisecond,
	}
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	f.FormatResult(mixedRunResult())
	require.NoError(t, f.Flush(70*time.Millisecond))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, "api smoke", suites.Name)
	assert.Equal(t, 5, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 3)

	passed := suites.TestSuites[0]
	assert.Equal(t, "list users", passed.Name)
	assert.Equal(t, 2, passed.Tests)
	assert.Zero(t, passed.Failures)
	require.Len(t, passed.TestCases, 2)
	assert.Nil(t, passed.TestCases[0].Failure)

	failed := suites.TestSuites[1]
	assert.Equal(t, 2, failed.Tests)
	assert.Equal(t, 1, failed.Failures)
	require.Len(t, failed.TestCases, 2)
	require.NotNil(t, failed.TestCases[0].Failure)
	assert.Equal(t, "AssertionError", failed.TestCases[0].Failure.Type)
	assert.Equal(t, "expected 201 & got 500", failed.TestCases[0].Failure.Message)

	errored := suites.TestSuites[2]
	assert.Equal(t, 1, errored.Tests)
	assert.Equal(t, 1, errored.Errors)
	require.Len(t, errored.TestCases, 1)
	require.NotNil(t, errored.TestCases[0].Error)
	assert.Equal(t, "TransportError", errored.TestCases[0].Error.Type)
	assert.Equal(t, "connection refused", errored.TestCases[0].Error.Message)
}

func TestJUnitFormatter_TestsAttrCountsErrorsAsOneCase(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	result := &runner.RunResult{
		Collection: "down",
		Errors:     2,
		Results: []*runner.RequestResult{
			{Name: "a", Method: "GET", URL: "http://x/1", Error: errors.New("dial tcp: refused")},
			{Name: "b", Method: "GET", URL: "http://x/2", Error: errors.New("request timed out after 100ms")},
		},
	}
	f.FormatResult(result)
	require.NoError(t, f.Flush(time.Millisecond))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))
	assert.Equal(t, 2, suites.Tests)
	assert.Equal(t, 2, suites.Errors)
	assert.Zero(t, suites.Failures)
}

func TestJUnitFormatter_EscapesSpecialCharacters(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	f.FormatResult(&runner.RunResult{
		Collection: "escape",
		Failures:   1,
		Results: []*runner.RequestResult{
			{
				Name:       `has <angle> & "quote"`,
				Method:     "GET",
				URL:        "http://x/?a=1&b=2",
				StatusCode: 200,
				Tests: runner.TestResults{
					Total:    1,
					Failures: 1,
					Assertions: []*script.Assertion{
						{Name: "check <tag>", Passed: false, Message: `got "bad" & <worse>`},
					},
				},
			},
		},
	})
	require.NoError(t, f.Flush(time.Millisecond))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))
	require.Len(t, suites.TestSuites, 1)
	require.Len(t, suites.TestSuites[0].TestCases, 1)
	assert.Equal(t, "check <tag>", suites.TestSuites[0].TestCases[0].Name)
	assert.Equal(t, `got "bad" & <worse>`, suites.TestSuites[0].TestCases[0].Failure.Message)
}

func TestTestCaseCount(t *testing.T) {
	assert.Equal(t, 1, testCaseCount(&runner.RequestResult{Error: errors.New("x")}))
	assert.Equal(t, 3, testCaseCount(&runner.RequestResult{Tests: runner.TestResults{Total: 3}}))
	assert.Equal(t, 0, testCaseCount(&runner.RequestResult{}))
}
