package main

import "github.com/colrun/colrun/apps/cli/cmd"

// Set by the linker at release time.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
