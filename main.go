package main

import (
	"os"

	"github.com/hireloop/interviewer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
