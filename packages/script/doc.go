// Package script evaluates per-request JavaScript assertion scripts.
//
// Each evaluation gets a fresh goja runtime exposing only read-only
// response data and the test(name, fn) registration primitive. Nothing
// else from the host is reachable: no filesystem, no process, no module
// loading, and no state survives from one request's script to the next.
package script
