package main

import (
	"os"

	"github.com/tpanh/rentd/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
