package main

import (
	"os"

	"github.com/lawrencejones/bytesink/cmd/bytesink/cmd"
)

func main() {
	if err := cmd.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
