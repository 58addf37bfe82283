package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/colrun/colrun/packages/collection"
	"github.com/colrun/colrun/packages/env"
	"github.com/colrun/colrun/packages/http"
	"github.com/colrun/colrun/packages/script"
)

// WarnFunc receives non-fatal diagnostics such as unresolved variables.
type WarnFunc func(format string, args ...any)

type Config struct {
	Timeout        time.Duration
	Delay          time.Duration
	Bail           bool
	Verbose        bool
	ValidateSSL    bool
	Proxy          string
	ScriptTimeout  time.Duration
	DefaultHeaders map[string]string
}

type Runner struct {
	client   *http.Client
	sandbox  *script.Sandbox
	config   *Config
	warnFunc WarnFunc
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{ValidateSSL: true}
	}

	clientOpts := []http.ClientOption{
		http.WithValidateSSL(cfg.ValidateSSL),
	}
	if cfg.Timeout > 0 {
		clientOpts = append(clientOpts, http.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, http.WithProxy(cfg.Proxy))
	}

	sandboxOpts := []script.Option{}
	if cfg.ScriptTimeout > 0 {
		sandboxOpts = append(sandboxOpts, script.WithTimeout(cfg.ScriptTimeout))
	}

	return &Runner{
		client:  http.NewClient(clientOpts...),
		sandbox: script.NewSandbox(sandboxOpts...),
		config:  cfg,
	}
}

// SetWarnFunc sets the sink for unresolved-variable diagnostics.
func (r *Runner) SetWarnFunc(fn WarnFunc) {
	r.warnFunc = fn
}

func (r *Runner) warn(format string, args ...any) {
	if r.warnFunc != nil {
		r.warnFunc(format, args...)
	}
}

// RunResult aggregates one run. Results preserve document order.
type RunResult struct {
	Collection string
	Results    []*RequestResult
	Passed     int
	Failures   int
	Errors     int
	Skipped    int
	Duration   time.Duration
}

// RequestResult is the outcome of one request. Exactly one of Error and a
// populated Tests is meaningful: a transport failure carries empty test
// results and is never also counted as an assertion failure.
type RequestResult struct {
	Name           string
	Method         string
	URL            string
	StatusCode     int // 0 on transport failure
	ExpectedStatus int // informational hint from the collection
	Duration       time.Duration
	Error          error
	Tests          TestResults
	Response       *http.Response
}

// TestResults summarizes the assertions one script recorded.
type TestResults struct {
	Total      int
	Failures   int
	Assertions []*script.Assertion
}

// Failed reports whether this node counts as a failure for bail purposes.
func (r *RequestResult) Failed() bool {
	return r.Error != nil || r.Tests.Failures > 0
}

// Run executes the collection depth-first against the environment and
// returns a fresh RunResult. It is a pure function of its inputs: the
// runner holds no state across calls and per-request failures are folded
// into the result, never returned as errors.
func (r *Runner) Run(col *collection.Collection, environment env.Environment) *RunResult {
	start := time.Now()
	result := &RunResult{
		Collection: col.Name,
	}

	// A limiter spaced at the configured delay enforces the minimum gap
	// between consecutive dispatch starts. The first request is not
	// delayed.
	var limiter *rate.Limiter
	if r.config.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(r.config.Delay), 1)
	}

	col.Walk(func(req *collection.Request) bool {
		if limiter != nil {
			_ = limiter.Wait(context.Background())
		}

		reqResult := r.execute(req, environment)
		result.Results = append(result.Results, reqResult)

		switch {
		case reqResult.Error != nil:
			result.Errors++
		case reqResult.Tests.Failures > 0:
			result.Failures++
		default:
			result.Passed++
		}

		if r.config.Bail && reqResult.Failed() {
			return false
		}
		return true
	})

	// Under bail the unvisited remainder is omitted from Results but
	// still accounted for.
	result.Skipped = col.RequestCount() - len(result.Results)
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) execute(req *collection.Request, environment env.Environment) *RequestResult {
	httpReq := http.NewRequest(req.Method, env.Interpolate(req.URL, environment))
	httpReq.Name = req.Name
	for k, v := range r.config.DefaultHeaders {
		httpReq.SetHeader(k, v)
	}
	for k, v := range env.InterpolateAll(req.Headers, environment) {
		httpReq.SetHeader(k, v)
	}
	if req.Body != "" {
		httpReq.SetBody(env.Interpolate(req.Body, environment))
	}

	if r.config.Verbose {
		for _, name := range env.Unresolved(req.URL, environment) {
			r.warn("request %q: unresolved variable %q in url", req.Name, name)
		}
	}

	result := &RequestResult{
		Name:           req.Name,
		Method:         req.Method,
		URL:            httpReq.URL,
		ExpectedStatus: req.ExpectedStatus,
	}

	start := time.Now()
	resp, err := r.client.Do(httpReq)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = err
		return result
	}

	result.StatusCode = resp.StatusCode
	result.Response = resp

	if req.Script != "" {
		assertions := r.sandbox.Evaluate(req.Script, scriptContext(resp))
		result.Tests = collectTestResults(assertions)
	}

	return result
}

func scriptContext(resp *http.Response) *script.Context {
	ctx := &script.Context{
		Status:     resp.StatusCode,
		StatusText: resp.Status,
		Headers:    resp.Headers,
		Body:       resp.BodyString(),
		ElapsedMs:  resp.DurationMs(),
	}
	// Best effort: a body that is not JSON leaves ctx.JSON nil.
	if parsed, err := resp.BodyJSON(); err == nil {
		ctx.JSON = parsed
	}
	return ctx
}

func collectTestResults(assertions []*script.Assertion) TestResults {
	results := TestResults{
		Total:      len(assertions),
		Assertions: assertions,
	}
	for _, a := range assertions {
		if !a.Passed {
			results.Failures++
		}
	}
	return results
}
