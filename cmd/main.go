package main

import (
	"os"

	"github.com/tcfw/didanchor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
