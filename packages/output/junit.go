package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/colrun/colrun/packages/runner"
)

// JUnit XML structures

// JUnitTestSuites is the root element
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite represents one request
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase represents one assertion
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// JUnitFormatter formats run results as JUnit XML
type JUnitFormatter struct {
	writer     io.Writer
	name       string
	testSuites []JUnitTestSuite
	tests      int
	failures   int
	errors     int
}

type JUnitOption func(*JUnitFormatter)

func NewJUnitFormatter(opts ...JUnitOption) *JUnitFormatter {
	f := &JUnitFormatter{
		writer:     os.Stdout,
		testSuites: make([]JUnitTestSuite, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitFormatter) {
		f.writer = w
	}
}

func (f *JUnitFormatter) FormatResult(result *runner.RunResult) {
	if f.name == "" {
		f.name = result.Collection
	}

	for _, r := range result.Results {
		suite := JUnitTestSuite{
			Name:      r.Name,
			Tests:     testCaseCount(r),
			Time:      r.Duration.Seconds(),
			TestCases: make([]JUnitTestCase, 0, testCaseCount(r)),
		}

		if r.Error != nil {
			suite.Errors = 1
			suite.TestCases = append(suite.TestCases, JUnitTestCase{
				Name:      r.Name,
				ClassName: result.Collection,
				Time:      r.Duration.Seconds(),
				Error: &JUnitError{
					Message: r.Error.Error(),
					Type:    "TransportError",
					Content: fmt.Sprintf("%s %s: %v", r.Method, r.URL, r.Error),
				},
			})
		} else {
			for _, a := range r.Tests.Assertions {
				tc := JUnitTestCase{
					Name:      a.Name,
					ClassName: r.Name,
				}
				if !a.Passed {
					suite.Failures++
					tc.Failure = &JUnitFailure{
						Message: a.Message,
						Type:    "AssertionError",
						Content: fmt.Sprintf("%s: %s", a.Name, a.Message),
					}
				}
				suite.TestCases = append(suite.TestCases, tc)
			}
		}

		f.tests += suite.Tests
		f.failures += suite.Failures
		f.errors += suite.Errors
		f.testSuites = append(f.testSuites, suite)
	}
}

func (f *JUnitFormatter) FormatError(err error) {
	// Errors are included in individual test cases
}

func (f *JUnitFormatter) FormatHeader(version string) {
	// No header needed for JUnit XML
}

// Flush writes the accumulated JUnit XML output
func (f *JUnitFormatter) Flush(totalDuration time.Duration) error {
	suites := JUnitTestSuites{
		Name:       f.name,
		Tests:      f.tests,
		Failures:   f.failures,
		Errors:     f.errors,
		Time:       totalDuration.Seconds(),
		Timestamp:  time.Now().Format(time.RFC3339),
		TestSuites: f.testSuites,
	}

	fmt.Fprintf(f.writer, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	return encoder.Encode(suites)
}
