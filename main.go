package main

import (
	"os"

	"github.com/nethesap/nethesap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
