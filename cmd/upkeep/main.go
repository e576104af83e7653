package main

import (
	"os"

	cmd "github.com/glkt/upkeep/internal"
	"github.com/glkt/upkeep/internal/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.LogError(err.Error())
		os.Exit(1)
	}
}
