package main

import (
	"os"

	"github.com/transita/ptdelta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
