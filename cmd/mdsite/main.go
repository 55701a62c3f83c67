package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdServe   = "serve"
	cmdBuild   = "build"
	cmdCheck   = "check"
	cmdConfig  = "config"
	cmdImport  = "import"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrListen             = errors.New("failed to listen")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(env.Stderr, "internal error: %v\n", r)
			code = ExitGeneral
		}
	}()

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case cmdServe:
		err = runServe(ctx, rest, env)
	case cmdBuild:
		err = runBuildCmd(ctx, rest, env)
	case cmdCheck:
		err = runCheck(ctx, rest, env)
	case cmdConfig:
		err = runConfig(rest, env)
	case cmdImport:
		err = runImport(ctx, rest, env)
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	case cmdHelp, "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger creates the command logger on env.Stderr.
// --quiet wins over --verbose.
func newLogger(f *commonFlags, env *Environment) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if f.logJSON {
		return slog.New(slog.NewJSONHandler(env.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(env.Stderr, opts))
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(logger *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))
}

// failuresError summarizes per-item failures that were already reported
// line by line. It unwraps to every failure so exit codes still match.
type failuresError struct {
	what string
	errs []error
}

func (e *failuresError) Error() string {
	return fmt.Sprintf("%d %s failed", len(e.errs), e.what)
}

func (e *failuresError) Unwrap() []error {
	return e.errs
}

// failures returns nil when errs is empty.
func failures(what string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &failuresError{what: what, errs: errs}
}
