// Command walktrap clusters groups of items into communities with the
// walktrap executable.
//
// It reads a JSON document (groups of items, weighted edges, items to keep
// out), runs the configured number of clustering rounds and writes the
// resulting groups and unclustered items as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/goccy/go-graphviz"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/muffato/pywaltrap/chooser"
	"github.com/muffato/pywaltrap/config"
	"github.com/muffato/pywaltrap/dendrogram"
	"github.com/muffato/pywaltrap/metrics"
	"github.com/muffato/pywaltrap/pipeline"
	"github.com/muffato/pywaltrap/solver"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "walktrap:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	if cli.Validate {
		fmt.Fprintln(stdout, "configuration valid")
		return nil
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Input
	in := stdin
	if cli.InputPath != "-" {
		f, err := os.Open(cli.InputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	doc, store, err := readInput(in)
	if err != nil {
		return err
	}

	// Pipeline
	opts := []pipeline.Option{pipeline.WithLogger(logger)}
	if cfg.Pipeline.Workers > 0 {
		opts = append(opts, pipeline.WithWorkers(cfg.Pipeline.Workers))
	}
	var reg *prometheus.Registry
	if cfg.Metrics.Textfile != "" {
		reg = prometheus.NewRegistry()
		rec, err := metrics.NewPrometheus(reg)
		if err != nil {
			return err
		}
		opts = append(opts, pipeline.WithRecorder(rec))
	}
	if cfg.Render.Dir != "" {
		if err := os.MkdirAll(cfg.Render.Dir, 0o755); err != nil {
			return err
		}
		opts = append(opts, pipeline.WithDendrogramHook(renderHook(cfg.Render, logger)))
	}

	exec := solver.NewExec(cfg.Solver.Binary,
		solver.WithExtraArgs(cfg.Solver.ExtraArgs...),
		solver.WithStderr(stderr),
		solver.WithExecLogger(logger),
	)
	adapter := solver.NewAdapter(exec, cfg.Solver.Parameters, solver.WithAdapterLogger(logger))
	p := pipeline.New(adapter, opts...)

	pass := pipeline.Pass{
		Score:  pipeline.StoreScorer(store, doc.Excluded),
		Choose: newChooser(cfg.Pipeline.Chooser, cli.InputPath == "-", logger),
	}
	passes := make([]pipeline.Pass, cfg.Pipeline.Rounds)
	for i := range passes {
		passes[i] = pass
	}

	res, err := p.ApplyMultipleRounds(ctx, doc.Groups, passes, cfg.Pipeline.PutLonelyInUnclustered)
	if err != nil {
		return err
	}

	// Output
	out := stdout
	if cli.OutputPath != "-" {
		f, err := os.Create(cli.OutputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeOutput(out, outputDoc{Groups: res.Groups, Unclustered: res.Unclustered}); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cli.Binary != "" {
		cfg.Solver.Binary = cli.Binary
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.Chooser != "" {
		cfg.Pipeline.Chooser = cli.Chooser
	}
	if cli.RenderDir != "" {
		cfg.Render.Dir = cli.RenderDir
	}
	if cli.MetricsFile != "" {
		cfg.Metrics.Textfile = cli.MetricsFile
	}
	if cli.Workers > 0 {
		cfg.Pipeline.Workers = cli.Workers
	}
	if cli.Rounds > 0 {
		cfg.Pipeline.Rounds = cli.Rounds
	}

	return cfg, cfg.Validate()
}

func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if lc.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level

	return zcfg.Build()
}

// newChooser maps a configured name to a Chooser. The prompt reads the
// terminal on stdin, so it is replaced by First when stdin carries the input
// document.
func newChooser(name string, inputOnStdin bool, logger *zap.Logger) chooser.Chooser {
	if name == config.ChooserPrompt && inputOnStdin {
		logger.Warn("input read from stdin, prompt disabled; pass -input to choose interactively",
			zap.String("chooser", config.ChooserFirst))
		return chooser.First()
	}
	switch name {
	case config.ChooserFirst:
		return chooser.First()
	case config.ChooserRelevant:
		return chooser.MostRelevant()
	default:
		return chooser.NewTerminalPrompt(chooser.WithLogger(logger))
	}
}

var renderFormats = map[string]graphviz.Format{
	"dot": graphviz.XDOT,
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
}

// renderHook writes every dendrogram to its own numbered file. Render
// failures are logged and do not stop the run.
func renderHook(rc config.RenderConfig, logger *zap.Logger) pipeline.DendrogramHook {
	var seq atomic.Int64
	format := renderFormats[rc.Format]

	return func(ctx context.Context, ci int, d *dendrogram.Dendrogram) {
		path := filepath.Join(rc.Dir, fmt.Sprintf("dendrogram-%05d-c%d.%s", seq.Add(1), ci, rc.Format))
		f, err := os.Create(path)
		if err != nil {
			logger.Warn("cannot render dendrogram", zap.String("path", path), zap.Error(err))
			return
		}
		defer f.Close()
		if err := d.Render(ctx, f, format); err != nil {
			logger.Warn("cannot render dendrogram", zap.String("path", path), zap.Error(err))
		}
	}
}
