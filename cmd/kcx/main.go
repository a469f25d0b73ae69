package main

import (
	"os"

	"github.com/cognicore/kcx/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
