// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"gtfetch-core/gene"
	"gtfetch-core/gtf"
	"gtfetch/internal/cli"
	"gtfetch/internal/cmdutil"
	"gtfetch/internal/config"
	"gtfetch/internal/extract"
	"gtfetch/internal/fetch"
	"gtfetch/internal/output"
	"gtfetch/internal/pipeline"
	"gtfetch/internal/version"
	"gtfetch/internal/writers"
)

// Exit codes: 0 success, 1 fetch/extract failure, 2 usage error,
// 3 parse/write failure, 130 interrupted.
const (
	exitOK      = 0
	exitFetch   = 1
	exitUsage   = 2
	exitRuntime = 3
)

// runConfig is the fully resolved invocation: flags layered over the
// optional YAML config over built-in defaults.
type runConfig struct {
	release int
	species string
	inputs  []string

	baseURL    string
	stagingDir string
	outDir     string

	feature string
	fields  []gene.Field
	format  string
	header  bool
	strict  bool
	keepGz  bool

	quiet   bool
	verbose bool
}

// RunContext parses argv and executes one fetch → extract → parse →
// write pass. All user-facing status goes to stdout, errors to stderr.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("gtfetch")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return exitOK
		}
		cmdutil.Errorf(stderr, "%v", err)
		fs.SetOutput(stderr)
		fs.Usage()
		return exitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "gtfetch version %s\n", version.Version)
		return exitOK
	}

	rc, err := resolve(fs, opts)
	if err != nil {
		cmdutil.Errorf(stderr, "%v", err)
		return exitUsage
	}

	logger := zap.NewNop()
	if rc.verbose {
		if l, lerr := zap.NewDevelopment(); lerr == nil {
			logger = l
			defer func() { _ = logger.Sync() }()
		}
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	gtfPaths := rc.inputs
	if len(gtfPaths) == 0 {
		fetcher := fetch.NewHTTP(rc.baseURL, rc.stagingDir)
		fetcher.SetLogger(logger)

		archives, ferr := fetcher.Fetch(ctx, rc.species, rc.release)
		if ferr != nil {
			cmdutil.Errorf(stderr, "%v", ferr)
			return exitFetch
		}
		gtfPaths, ferr = extract.Files(archives, rc.keepGz, logger)
		if ferr != nil {
			cmdutil.Errorf(stderr, "%v", ferr)
			return exitFetch
		}
	}

	if err := os.MkdirAll(rc.outDir, 0o755); err != nil {
		cmdutil.Errorf(stderr, "create output dir: %v", err)
		return exitRuntime
	}

	for _, p := range gtfPaths {
		outPath, stats, perr := writeTable(ctx, rc, p)
		if perr != nil {
			if errors.Is(perr, context.Canceled) {
				return 130
			}
			cmdutil.Errorf(stderr, "%v", perr)
			return exitRuntime
		}
		if stats.Skipped > 0 {
			cmdutil.Warnf(stderr, rc.quiet, "skipped %d malformed line(s) in %s", stats.Skipped, p)
		}
		_, _ = fmt.Fprintf(outw, "wrote %d %s row(s) to %s\n", stats.Records, rc.feature, outPath)
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		cmdutil.Errorf(stderr, "%v", e)
		return exitRuntime
	}
	return exitOK
}

// Run is the background-context convenience wrapper.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// writeTable extracts one GTF into <out-dir>/<name>.genes.<ext>. The
// table is written to a temp file and renamed into place so a failed
// run leaves no partial output; re-running the same species/release
// overwrites the previous table (last writer wins).
func writeTable(ctx context.Context, rc runConfig, gtfPath string) (string, gtf.ScanStats, error) {
	outPath := filepath.Join(rc.outDir, tableName(gtfPath)+".genes."+output.Ext(rc.format))

	tmp, err := os.CreateTemp(rc.outDir, filepath.Base(outPath)+".part*")
	if err != nil {
		return "", gtf.ScanStats{}, fmt.Errorf("create %s: %w", outPath, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	proj := gene.NewProjection(rc.fields)
	in, errCh := writers.StartRowWriter(bw, proj, rc.format, rc.header, 64)

	cfg := pipeline.Config{Feature: rc.feature, Strict: rc.strict, Fields: rc.fields}
	stats, perr := pipeline.File(ctx, cfg, gtfPath, func(r gene.Row) error {
		select {
		case in <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(in)

	werr := <-errCh
	if perr == nil {
		perr = werr
	}
	if ferr := bw.Flush(); perr == nil {
		perr = ferr
	}
	if cerr := tmp.Close(); perr == nil {
		perr = cerr
	}
	if perr != nil {
		return "", stats, perr
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", stats, fmt.Errorf("finalize %s: %w", outPath, err)
	}
	return outPath, stats, nil
}

// tableName derives the output base name from the input path.
func tableName(gtfPath string) string {
	base := filepath.Base(gtfPath)
	if base == "-" {
		return "stdin"
	}
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, ".gtf")
}

// resolve layers flag values over the optional config file over
// built-in defaults. Flags the user set explicitly always win.
func resolve(fs *flag.FlagSet, opts cli.Options) (runConfig, error) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg config.File
	if opts.ConfigPath != "" {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return runConfig{}, err
		}
	}

	rc := runConfig{
		release: opts.Release,
		species: opts.Species,
		inputs:  opts.Inputs,
		header:  opts.Header,
		strict:  opts.Strict,
		keepGz:  opts.KeepGz,
		quiet:   opts.Quiet,
		verbose: opts.Verbose,
	}

	rc.baseURL = firstOf(opts.BaseURL, cfg.BaseURL, fetch.DefaultBaseURL)
	rc.outDir = firstOf(opts.OutDir, cfg.OutDir, "gene-tables")
	rc.feature = firstOf(opts.FeatureType, cfg.FeatureType, "gene")

	rc.stagingDir = firstOf(opts.StagingDir, cfg.StagingDir, "")
	if rc.stagingDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		rc.stagingDir = filepath.Join(home, "temp-ftp-downloads")
	}

	rc.format = opts.Format
	if !set["format"] && cfg.Format != "" {
		switch cfg.Format {
		case cli.FormatTSV, cli.FormatCSV, cli.FormatJSON:
			rc.format = cfg.Format
		default:
			return runConfig{}, fmt.Errorf("invalid format %q in config", cfg.Format)
		}
	}

	switch {
	case len(opts.Attrs) > 0:
		fields, err := gene.ParseFields(opts.Attrs)
		if err != nil {
			return runConfig{}, err
		}
		rc.fields = fields
	case len(cfg.Fields) > 0:
		for _, f := range cfg.Fields {
			if f.Column == "" || f.Key == "" {
				return runConfig{}, fmt.Errorf("config field needs both column and key, got %+v", f)
			}
			rc.fields = append(rc.fields, gene.Field{Column: f.Column, Key: f.Key})
		}
	}
	return rc, nil
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
