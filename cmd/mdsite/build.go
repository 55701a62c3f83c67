package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/site"
)

// runBuildCmd writes the static site.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	logger := newLogger(&flags.common, env)
	setMaxProcs(logger)

	cfg, ec, err := loadSiteConfig(&flags.common, &flags.site, env)
	if err != nil {
		return err
	}

	outDir := resolveOutputDir(flags.output, cfg)
	workers := flags.workers
	if workers == 0 {
		workers = ec.Workers
	}
	logger.Debug("building site",
		"output", outDir,
		"workers", mdsite.ResolveWorkers(workers))

	s, err := site.New(cfg, site.WithLogger(logger))
	if err != nil {
		return err
	}

	start := env.Now()
	results, err := s.Build(ctx, outDir, workers)
	if results == nil {
		if errors.Is(err, site.ErrWriteOutput) {
			return fmt.Errorf("building %s: %w%s", outDir, err, hints.ForOutputDirectory())
		}
		return fmt.Errorf("building %s: %w", outDir, err)
	}

	errs := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Built in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	if err := failures("document(s)", errs); err != nil {
		switch {
		case errors.Is(err, mdsite.ErrLoadFailure):
			return fmt.Errorf("%w%s", err, hints.ForContentLoad(s.Remote()))
		case errors.Is(err, site.ErrWriteOutput):
			return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		return err
	}
	return nil
}

// resolveOutputDir returns the flag value, then the configured directory,
// then the default.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return config.DefaultOutputDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdsite.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdsite.MaxWorkers)
	}
	return nil
}

// printResults writes one line per document and returns the failures.
func printResults(results []site.BuildResult, quiet, verbose bool, env *Environment) []error {
	var succeeded int
	var errs []error

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Name, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Name, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, len(errs))
	}

	return errs
}
