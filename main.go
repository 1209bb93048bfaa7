package main

import (
	"os"

	"github.com/abhisek/familyhub/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
