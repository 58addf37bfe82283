package script

import (
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"
)

const (
	// DefaultTimeout bounds one script evaluation so a looping script
	// cannot stall the run.
	DefaultTimeout = 5 * time.Second
)

// Assertion is one named pass/fail check recorded by a script.
type Assertion struct {
	Name    string
	Passed  bool
	Message string
}

// Context is the read-only response data exposed to a script.
type Context struct {
	Status     int
	StatusText string
	Headers    map[string]string
	Body       string
	JSON       any // best-effort parsed body, nil when not JSON
	ElapsedMs  int64
}

type Sandbox struct {
	timeout time.Duration
}

type Option func(*Sandbox)

func NewSandbox(opts ...Option) *Sandbox {
	s := &Sandbox{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Evaluate runs one assertion script against a response context and
// returns the assertions in registration order.
//
// A fresh runtime is built per call, so nothing leaks between requests.
// An exception inside one test callback fails that assertion and lets the
// rest of the script continue; an exception in the script body itself is
// recorded as a single synthetic failing assertion carrying the error
// text.
func (s *Sandbox) Evaluate(source string, ctx *Context) []*Assertion {
	if strings.TrimSpace(source) == "" {
		return nil
	}

	vm := goja.New()
	var results []*Assertion

	testFn := func(call goja.FunctionCall) goja.Value {
		a := &Assertion{Name: call.Argument(0).String()}

		fn, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			a.Message = "test() requires a function as its second argument"
		} else if _, err := fn(goja.Undefined()); err != nil {
			a.Message = exceptionText(err)
		} else {
			a.Passed = true
		}

		results = append(results, a)
		return goja.Undefined()
	}

	assertFn := func(call goja.FunctionCall) goja.Value {
		if call.Argument(0).ToBoolean() {
			return goja.Undefined()
		}
		msg := "assertion failed"
		if arg := call.Argument(1); !goja.IsUndefined(arg) {
			msg = arg.String()
		}
		panic(vm.ToValue(msg))
	}

	responseObj := responseObject(ctx)

	_ = vm.Set("test", testFn)
	_ = vm.Set("assert", assertFn)
	_ = vm.Set("response", responseObj)

	// pm namespace for scripts written against the Postman API surface.
	_ = vm.Set("pm", map[string]any{
		"test": testFn,
		"response": map[string]any{
			"code":    ctx.Status,
			"status":  ctx.StatusText,
			"headers": copyHeaders(ctx.Headers),
			"json": func(goja.FunctionCall) goja.Value {
				return vm.ToValue(ctx.JSON)
			},
			"text": func(goja.FunctionCall) goja.Value {
				return vm.ToValue(ctx.Body)
			},
		},
	})

	watchdog := time.AfterFunc(s.timeout, func() {
		vm.Interrupt("script timed out")
	})
	defer watchdog.Stop()

	if _, err := vm.RunString(source); err != nil {
		results = append(results, &Assertion{
			Name:    "script execution",
			Message: exceptionText(err),
		})
	}

	return results
}

func responseObject(ctx *Context) map[string]any {
	return map[string]any{
		"status":     ctx.Status,
		"statusText": ctx.StatusText,
		"headers":    copyHeaders(ctx.Headers),
		"body":       ctx.Body,
		"json":       ctx.JSON,
		"elapsedMs":  ctx.ElapsedMs,
	}
}

// copyHeaders hands the script its own map so mutation cannot reach the
// response shared with reporters.
func copyHeaders(headers map[string]string) map[string]string {
	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}
	return copied
}

func exceptionText(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return ex.Value().String()
	}
	return err.Error()
}
