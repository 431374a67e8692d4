package main

import (
	"os"

	"github.com/brunobrsr1/sales-project/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
