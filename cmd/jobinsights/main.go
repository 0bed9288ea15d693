package main

import (
	"os"

	"github.com/fr4nk3nst1ner/jobinsights/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
