package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"asmetrics/internal/config"
	"asmetrics/internal/history"
	"asmetrics/internal/metrics"
	"asmetrics/internal/report"

	"github.com/charmbracelet/log"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// datasetList collects repeated --datasets values. Comma-separated values
// are split, so `--datasets a,b` and `--datasets a --datasets b` behave
// the same.
type datasetList []string

func (d *datasetList) String() string { return strings.Join(*d, ",") }

func (d *datasetList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*d = append(*d, p)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asmetrics", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var datasets datasetList
	fs.Var(&datasets, "datasets", "dataset directories (repeatable; default: auto-detect data* under the working directory)")
	outFlag := fs.String("out", "metrics.csv", "output CSV path")
	jsonFlag := fs.String("json", "", "also write the table as indented JSON to this path")
	configFlag := fs.String("config", "", "path to config.json (optional)")
	historyFlag := fs.String("history", "", "sqlite database to append a run record to (optional)")
	verbose := fs.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintln(stdout, "asmetrics", version)
		return 0
	}

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(stderr, "bad config: %v\n", err)
		return 1
	}

	// merge config into flags (flags win when provided)
	out := *outFlag
	if out == "metrics.csv" && cfg.OutCSV != "" {
		out = cfg.OutCSV
	}
	jsonOut := *jsonFlag
	if jsonOut == "" {
		jsonOut = cfg.OutJSON
	}
	historyPath := *historyFlag
	if historyPath == "" {
		historyPath = cfg.History
	}

	logger := newLogger(stderr, cfg, *verbose)
	logger.Debug("resolved options", "out", out, "json", jsonOut, "history", historyPath, "explicit_datasets", len(datasets))

	dirs := []string(datasets)
	if len(dirs) == 0 {
		dirs, err = metrics.FindDatasets(".")
		if err != nil {
			logger.Error("failed to scan working directory", "err", err)
			return 1
		}
		if len(dirs) == 0 {
			fmt.Fprintln(stderr, "No datasets found (expected directories like data1, data2 with contig.fasta).")
			return 1
		}
	}

	rows := make([]metrics.DatasetMetrics, 0, len(dirs))
	for _, d := range dirs {
		logger.Info("computing metrics", "dataset", d)
		m, err := metrics.ComputeForDataset(d)
		if err != nil {
			logger.Error("metrics computation failed", "dataset", d, "err", err)
			return 1
		}
		logger.Debug("dataset done", "dataset", m.Dataset, "contigs", m.NumContigs, "bases", m.TotalContigBases, "n50", m.N50)
		rows = append(rows, m)
	}

	if err := report.WriteCSV(out, rows); err != nil {
		logger.Error("failed to write output CSV", "path", out, "err", err)
		return 1
	}
	if jsonOut != "" {
		if err := report.WriteJSON(jsonOut, rows); err != nil {
			logger.Error("failed to write JSON summary", "path", jsonOut, "err", err)
			return 1
		}
	}
	if historyPath != "" {
		if err := recordRun(historyPath, out, len(rows)); err != nil {
			logger.Warn("failed to record run history", "path", historyPath, "err", err)
		}
	}

	fmt.Fprintf(stdout, "Wrote %s with metrics for %d dataset(s).\n", out, len(rows))
	return 0
}

// newLogger applies log level from flags/config (flags override config).
func newLogger(stderr io.Writer, cfg *config.Config, verbose bool) *log.Logger {
	var out io.Writer = stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			out = io.MultiWriter(stderr, f)
		}
	}
	logger := log.New(out)
	if verbose {
		logger.SetLevel(log.DebugLevel)
		return logger
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info", "":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
		logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
	}
	return logger
}

func recordRun(path, out string, datasets int) error {
	st, err := history.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Append(out, datasets, time.Now())
}
