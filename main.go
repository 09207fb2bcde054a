package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

const defaultConfPath = "notesite.yaml"

type options struct {
	confPath     string
	confExplicit bool
	outDir       string
	workers      int
	verbose      bool
	version      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)

	opts := &options{}
	flags.StringVarP(&opts.confPath, "config", "c", defaultConfPath, "Path to the site configuration file")
	flags.StringVarP(&opts.outDir, "out", "o", "", "Output directory, overrides outDir from the configuration")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Parallel file workers (0 = GOMAXPROCS)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&opts.version, "version", false, "Print the version and exit")

	if err := flags.Parse(args[1:]); err != nil {
		return nil, err
	}
	if flags.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if opts.workers < 0 {
		return nil, fmt.Errorf("--workers must not be negative, got %d", opts.workers)
	}
	opts.confExplicit = flags.Changed("config")
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConf reads the configuration and applies command line overrides.
func loadConf(opts *options) (*SiteConf, error) {
	conf, err := readConf(opts.confPath, opts.confExplicit)
	if err != nil {
		return nil, err
	}
	if opts.outDir != "" {
		conf.OutDir = opts.outDir
	}
	if opts.workers > 0 {
		conf.Workers = opts.workers
	}
	return conf, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, Version)
		return nil
	}

	slog.SetDefault(newLogger(stderr, opts.verbose))

	// maxprocs.Set only fails on an invalid GOMAXPROCS, the runtime default applies then.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		slog.Debug(fmt.Sprintf(format, args...))
	}))

	conf, err := loadConf(opts)
	if err != nil {
		return err
	}

	return Build(ctx, conf)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Build failed", "error", err)
		stop()
		os.Exit(1)
	}
}
