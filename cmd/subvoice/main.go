package main

import (
	"os"

	"github.com/khmerdub/subvoice/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
