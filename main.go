package main

import (
	"os"

	"github.com/gmit-kupang/sensus-jemaat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
