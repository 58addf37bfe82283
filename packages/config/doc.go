// Package config loads optional project-level defaults for the CLI.
//
// A colrun.json or colrun.yaml in the working directory sets defaults for
// timeout, delay, bail, reporter and color; command-line flags always win.
package config
