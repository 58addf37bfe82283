// Package http dispatches one interpolated request over the network.
//
// It wraps the standard library's http package with the runner's
// discipline:
//   - a hard per-request deadline that aborts even a live-but-slow socket
//   - redirects returned as ordinary responses, never followed
//   - no body on GET/HEAD requests
//   - keep-alives disabled, so each request uses its own connection
package http
