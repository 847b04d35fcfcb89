package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/fracture-planner/internal/config"
	"github.com/kubev2v/fracture-planner/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "planner-api",
	Short: "Hydraulic fracture geometry planner API",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}

// setupLogging installs the process logger as zap global and returns a
// function restoring the previous globals.
func setupLogging(cfg *config.Config) func() {
	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel), cfg.Service.LogFormat)
	undo := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		undo()
	}
}
