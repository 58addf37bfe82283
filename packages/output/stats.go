package output

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/colrun/colrun/packages/runner"
)

// LatencySummary holds request-duration percentiles for one run.
type LatencySummary struct {
	Min time.Duration
	P50 time.Duration
	P95 time.Duration
	Max time.Duration
}

// SummarizeLatency folds every request duration, including failed
// dispatches, into an HDR histogram. Returns nil for an empty run.
func SummarizeLatency(result *runner.RunResult) *LatencySummary {
	if len(result.Results) == 0 {
		return nil
	}

	// 1ms to 10min tracked with 3 significant figures.
	hist := hdrhistogram.New(1, int64(10*time.Minute/time.Millisecond), 3)
	for _, r := range result.Results {
		_ = hist.RecordValue(r.Duration.Milliseconds())
	}

	return &LatencySummary{
		Min: time.Duration(hist.Min()) * time.Millisecond,
		P50: time.Duration(hist.ValueAtQuantile(50)) * time.Millisecond,
		P95: time.Duration(hist.ValueAtQuantile(95)) * time.Millisecond,
		Max: time.Duration(hist.Max()) * time.Millisecond,
	}
}
