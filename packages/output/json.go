package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/colrun/colrun/packages/runner"
)

// JSONOutput is the machine-readable serialization of a run
type JSONOutput struct {
	Collection string        `json:"collection"`
	Summary    JSONSummary   `json:"summary"`
	Requests   []JSONRequest `json:"requests"`
	Duration   float64       `json:"duration"`
	Time       string        `json:"time"`
}

type JSONSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failures int `json:"failures"`
	Errors   int `json:"errors"`
	Skipped  int `json:"skipped"`
}

type JSONRequest struct {
	Name       string          `json:"name"`
	Method     string          `json:"method"`
	URL        string          `json:"url"`
	Status     int             `json:"status,omitempty"`
	Duration   float64         `json:"duration"`
	Error      string          `json:"error,omitempty"`
	Tests      JSONTestResults `json:"tests"`
}

type JSONTestResults struct {
	Total      int             `json:"total"`
	Failures   int             `json:"failures"`
	Assertions []JSONAssertion `json:"assertions,omitempty"`
}

type JSONAssertion struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// JSONFormatter formats run results as JSON
type JSONFormatter struct {
	writer io.Writer
	output JSONOutput
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	f.output.Collection = result.Collection
	f.output.Summary = JSONSummary{
		Total:    result.Passed + result.Failures + result.Errors + result.Skipped,
		Passed:   result.Passed,
		Failures: result.Failures,
		Errors:   result.Errors,
		Skipped:  result.Skipped,
	}

	for _, r := range result.Results {
		req := JSONRequest{
			Name:     r.Name,
			Method:   r.Method,
			URL:      r.URL,
			Status:   r.StatusCode,
			Duration: float64(r.Duration.Milliseconds()),
			Tests: JSONTestResults{
				Total:    r.Tests.Total,
				Failures: r.Tests.Failures,
			},
		}

		if r.Error != nil {
			req.Error = r.Error.Error()
		}

		for _, a := range r.Tests.Assertions {
			req.Tests.Assertions = append(req.Tests.Assertions, JSONAssertion{
				Name:    a.Name,
				Passed:  a.Passed,
				Message: a.Message,
			})
		}

		f.output.Requests = append(f.output.Requests, req)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual request results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	f.output.Duration = float64(totalDuration.Milliseconds())
	f.output.Time = time.Now().Format(time.RFC3339)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.output)
}
