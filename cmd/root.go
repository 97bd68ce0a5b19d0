// Package cmd provides CLI commands for soso.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "soso",
	Short: "Convert scientific metadata to schema.org Dataset JSON-LD",
	Long: `soso converts EML, SPASE and ISO 19115 metadata records into
schema.org Dataset graphs following the Science on Schema.org guidelines.

Each record is read with the strategy of its dialect, every Dataset
property is queried, caller overrides are applied and the graph is written
as JSON-LD. Unresolved references and other soft problems are reported on
stderr without failing the conversion.

Examples:
  soso convert -d spase -i record.xml -o record.jsonld
  soso convert -d eml -i knb.xml --override license=CC-BY-4.0
  soso batch -d spase --corpus ./spase 'NASA/**/*.xml' -o out/
  soso validate record.jsonld`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dialectsCmd)
	rootCmd.AddCommand(profilesCmd)
}
