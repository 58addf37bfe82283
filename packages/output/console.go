package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/colrun/colrun/packages/runner"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "\n%s\n\n", bold("Collection: "+result.Collection))

	for _, r := range result.Results {
		if r.Error != nil {
			fmt.Fprintf(f.writer, "  %s %s %s %s\n", red("x"), r.Method, r.Name, red(fmt.Sprintf("(%v)", r.Error)))
			continue
		}

		symbol := green("✓")
		if r.Tests.Failures > 0 {
			symbol = red("✗")
		}

		fmt.Fprintf(f.writer, "  %s %s %s %s\n", symbol, r.Method, r.Name,
			cyan(fmt.Sprintf("[%d, %dms]", r.StatusCode, r.Duration.Milliseconds())))

		if f.verbose && r.ExpectedStatus > 0 && r.StatusCode != r.ExpectedStatus {
			fmt.Fprintf(f.writer, "    %s\n", yellow(fmt.Sprintf("note: expected status %d, got %d", r.ExpectedStatus, r.StatusCode)))
		}

		for _, a := range r.Tests.Assertions {
			if a.Passed {
				fmt.Fprintf(f.writer, "    %s %s\n", green("✓"), a.Name)
			} else {
				fmt.Fprintf(f.writer, "    %s %s\n", red("✗"), a.Name)
				if a.Message != "" {
					fmt.Fprintf(f.writer, "      %s\n", a.Message)
				}
			}
		}
	}

	fmt.Fprintf(f.writer, "\nRequests: ")
	if result.Passed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", result.Passed)))
	}
	if result.Failures > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", result.Failures)))
	}
	if result.Errors > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d errors", result.Errors)))
	}
	if result.Skipped > 0 {
		fmt.Fprintf(f.writer, "%s, ", yellow(fmt.Sprintf("%d skipped", result.Skipped)))
	}
	total := result.Passed + result.Failures + result.Errors + result.Skipped
	fmt.Fprintf(f.writer, "%d total\n", total)
	fmt.Fprintf(f.writer, "Time:     %dms\n", result.Duration.Milliseconds())

	if f.verbose {
		f.printLatency(result)
	}

	fmt.Fprintf(f.writer, "\n")
}

func (f *ConsoleFormatter) printLatency(result *runner.RunResult) {
	summary := SummarizeLatency(result)
	if summary == nil {
		return
	}
	fmt.Fprintf(f.writer, "Latency:  min=%dms p50=%dms p95=%dms max=%dms\n",
		summary.Min.Milliseconds(), summary.P50.Milliseconds(),
		summary.P95.Milliseconds(), summary.Max.Milliseconds())
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("colrun"), version)
}
