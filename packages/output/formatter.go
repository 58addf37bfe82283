package output

import (
	"time"

	"github.com/colrun/colrun/packages/runner"
)

// Formatter renders a run result to its output representation.
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable is implemented by formatters that accumulate results and
// write once at the end.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// testCaseCount is the number of JUnit-style cases one request result
// contributes: its recorded assertions, or one synthetic case when the
// request failed at the transport layer before any assertion could run.
func testCaseCount(r *runner.RequestResult) int {
	if r.Error != nil && r.Tests.Total == 0 {
		return 1
	}
	return r.Tests.Total
}
