package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/finverse/matchmaker/internal/cli"
)

// Version information (set by build script)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// A .env file is optional; FINVERSE_* overrides may also come from the shell
	_ = godotenv.Load()

	cli.SetVersionInfo(Version, Commit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
