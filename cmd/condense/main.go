package main

import (
	"os"

	"github.com/condense-db/condense/cmd/condense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
