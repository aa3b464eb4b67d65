package main

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

func newLogger(verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return slog.New(log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "rstdoc",
	}))
}
