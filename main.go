package main

import (
	"log"
	"os"

	"github.com/avstrong/hotel/internal/cli"
	"github.com/avstrong/hotel/internal/logger"
)

func main() {
	l := logger.New(log.Default())

	var exitCode int

	if err := cli.NewRoot(l).Execute(); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
