package main

import (
	"fmt"
	"os"

	"github.com/steviee/lunar-accounts/internal/cli"
)

// Version information (set by ldflags during build)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	BuiltBy   = "unknown"
)

func main() {
	if err := cli.NewRootCommand(Version, Commit, BuildTime, BuiltBy).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
