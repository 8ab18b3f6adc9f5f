package main

import (
	"fmt"
	"os"

	"github.com/jrsteele09/ular-tangga-admin/internal/cli/command"
)

func main() {
	if err := command.App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
