// Package runner walks a collection and executes it request by request.
//
// Execution is strictly sequential in document order: interpolate,
// dispatch, evaluate the assertion script, fold the outcome into the
// aggregate. Bail and inter-request delay both assume this total order.
// Per-request failures of every kind are captured in the result and never
// escape Run; only malformed input upstream of Run is fatal.
package runner
