package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CLIConfig holds command-line configuration. Non-empty values override the
// configuration file.
type CLIConfig struct {
	ConfigPath  string
	InputPath   string
	OutputPath  string
	Binary      string
	LogLevel    string
	Chooser     string
	RenderDir   string
	MetricsFile string
	Workers     int
	Rounds      int
	Validate    bool
}

func parseFlags(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet("walktrap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("WALKTRAP_CONFIG", ""),
		"Path to the YAML configuration file (env: WALKTRAP_CONFIG)")

	fs.StringVar(&cfg.InputPath, "input", "-",
		"Input JSON document, - for stdin (the prompt chooser needs a file)")

	fs.StringVar(&cfg.OutputPath, "output", "-",
		"Output JSON document, - for stdout")

	fs.StringVar(&cfg.Binary, "walktrap",
		getEnv("WALKTRAP_BINARY", ""),
		"Path to the walktrap executable (env: WALKTRAP_BINARY)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("WALKTRAP_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: WALKTRAP_LOG_LEVEL)")

	fs.StringVar(&cfg.Chooser, "chooser", "",
		"Cut selection: prompt, first, relevant")

	fs.StringVar(&cfg.RenderDir, "dot", "",
		"Directory receiving one dendrogram drawing per component")

	fs.StringVar(&cfg.MetricsFile, "metrics", "",
		"Write Prometheus metrics in text format to this file at exit")

	fs.IntVar(&cfg.Workers, "workers",
		getEnvInt("WALKTRAP_WORKERS", 0),
		"Parallel solver calls, 0 keeps the configured value (env: WALKTRAP_WORKERS)")

	fs.IntVar(&cfg.Rounds, "rounds", 0,
		"Clustering rounds, 0 keeps the configured value")

	fs.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: walktrap [flags] < input.json > output.json\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
