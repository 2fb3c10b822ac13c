// Command belts reads a single belt-network problem document from stdin
// and writes its solve result to stdout, per spec.md §6.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"factoryplan/internal/belts"
	"factoryplan/pkg/apperror"
	"factoryplan/pkg/config"
	"factoryplan/pkg/logger"
)

func main() {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.Log = logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})

	var problem belts.Problem
	if err := json.NewDecoder(os.Stdin).Decode(&problem); err != nil {
		logger.Log.Error("malformed input", "error", apperror.Wrap(err, apperror.CodeInvalidInput, "malformed input document"))
		os.Exit(1)
	}

	result, err := belts.Solve(&problem)
	if err != nil {
		logger.Log.Error("solve failed", "error", err)
		os.Exit(1)
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		logger.Log.Error("failed to write result", "error", apperror.Wrap(err, apperror.CodeInternal, "failed to write result"))
		os.Exit(1)
	}
}
