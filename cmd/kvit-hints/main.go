package main

import (
	"fmt"
	"os"

	"github.com/kvit-s/kvit-hints/internal/cli"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
	buildDate  = "unknown"
)

func main() {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version:    version,
		CommitHash: commitHash,
		CommitDate: commitDate,
		BuildDate:  buildDate,
	})

	err := rootCmd.Execute()
	if err != nil && cli.ExitCode(err) != cli.ExitRejected {
		// Rejections were already reported by the convert command
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
