// Command jsonfmt pretty prints JSON documents.
//
//	jsonfmt [flags] [files...]
//
// Without files the document is read from standard input. Each file is
// parsed and formatted inside its own arena; documents that are invalid or
// need more memory than -arena.size are reported and make jsonfmt exit with
// status 1.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/version"

	"github.com/pavanmanishd/arenajson/heapprof"
	"github.com/pavanmanishd/arenajson/internal/config"
	"github.com/pavanmanishd/arenajson/internal/logging"
	"github.com/pavanmanishd/arenajson/internal/reformat"
)

const (
	programName = "jsonfmt"
	stdinName   = "<stdin>"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config.Config
	f := flag.NewFlagSet(programName, flag.ContinueOnError)
	f.SetOutput(stderr)
	printVersion := f.Bool("version", false, "Print this program's version information and exit.")
	f.Usage = func() {
		fmt.Fprintf(f.Output(), "Usage: %s [flags] [files...]\n\nFlags:\n", programName)
		f.PrintDefaults()
	}

	if err := config.Load(f, args, &cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "failed parsing config: %v\n", err)
		return 1
	}
	if *printVersion {
		fmt.Fprintln(stdout, version.Print(programName))
		return 0
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(versioncollector.NewCollector(programName))
	logger := logging.New(cfg.Log, stderr, reg)

	if err := format(ctx, cfg, f.Args(), stdin, stdout, logger, reg); err != nil {
		level.Error(logger).Log("msg", "jsonfmt failed", "err", err)
		return 1
	}
	return 0
}

// format reformats every document and writes the requested outputs. It
// returns an error if any document failed.
func format(ctx context.Context, cfg config.Config, files []string, stdin io.Reader, stdout io.Writer, logger log.Logger, reg *prometheus.Registry) error {
	jobs, err := buildJobs(cfg, files, stdin)
	if err != nil {
		return err
	}

	opts := reformat.OptionsFromConfig(cfg)
	var prof *heapprof.Profile
	if cfg.Profile.Enabled() {
		prof = heapprof.New()
		opts.Profiler = prof
		reg.MustRegister(prof.Collector())
	}

	pool, err := reformat.NewPool(cfg.Workers, opts, logger, reg)
	if err != nil {
		return err
	}
	results := pool.Run(ctx, jobs)
	if err := pool.Close(); err != nil {
		level.Warn(logger).Log("msg", "failed to stop workers", "err", err)
	}

	if !cfg.Write {
		if err := printResults(stdout, results); err != nil {
			return err
		}
	}

	stats := pool.Stats()
	level.Info(logger).Log("msg", "reformatted documents", "documents", stats.Processed, "failed", stats.Failed)

	if prof != nil {
		if err := writeProfiles(prof, cfg.Profile); err != nil {
			return err
		}
	}
	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			return errors.Wrap(err, "write metrics")
		}
	}

	if stats.Failed > 0 {
		return errors.Errorf("%d of %d documents failed", stats.Failed, stats.Processed)
	}
	return nil
}

func buildJobs(cfg config.Config, files []string, stdin io.Reader) ([]reformat.Job, error) {
	if len(files) == 0 {
		if cfg.Write {
			return nil, errors.New("-write needs at least one file")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "read standard input")
		}
		return []reformat.Job{{Name: stdinName, Data: data}}, nil
	}

	jobs := make([]reformat.Job, 0, len(files))
	for _, path := range files {
		jobs = append(jobs, reformat.FileJob(path))
	}
	return jobs, nil
}

// printResults writes the successful documents in order, one per line.
func printResults(w io.Writer, results []reformat.Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		bw.Write(res.Output)
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write output")
}

func writeProfiles(prof *heapprof.Profile, cfg config.ProfileConfig) error {
	if cfg.HeapText != "" {
		if err := writeFile(cfg.HeapText, prof.WriteText); err != nil {
			return err
		}
	}
	if cfg.HeapProto != "" {
		if err := writeFile(cfg.HeapProto, prof.WriteProto); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create profile")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
