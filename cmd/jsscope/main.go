// Command jsscope is a CLI tool for linting JavaScript and inspecting what
// the parser sees: tokens, scope events and diagnostics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // processing failure or failing diagnostics
	exitUsage = 2 // bad flags or arguments
)

// exitCodeError carries an exit code out of a command. A nil err exits
// without printing anything more.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitCodeError) Unwrap() error { return e.err }

// failed marks err as a processing failure rather than a usage error.
func failed(err error) error {
	return &exitCodeError{code: exitError, err: err}
}

// errFailures ends a command whose output already reported the problems.
var errFailures = &exitCodeError{code: exitError}

type cli struct {
	verbose    int
	paths      []string
	configPath string
	noColor    bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.err != nil {
			cliutil.PrintError(stderr, "%v", ec.err)
		}
		return ec.code
	}
	cliutil.PrintError(stderr, "%v", err)
	_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
	return exitUsage
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsscope",
		Short: "JavaScript scope analyzer and linter",
		Long: `jsscope parses JavaScript, reports syntax errors without giving up on the
rest of the file, and checks how variables are declared and used.`,
		Example: `  jsscope lint src/
  jsscope lint --format sarif -p src -p lib
  jsscope events app.js
  jsscope tokens --json app.js
  jsscope watch src/`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return err
	})

	flags := root.PersistentFlags()
	flags.CountVarP(&c.verbose, "verbose", "v", "enable debug logging (-vv for trace logging)")
	flags.StringArrayVarP(&c.paths, "path", "p", nil, "add a file or directory to check (repeatable)")
	flags.StringVar(&c.configPath, "config", "", "configuration file (default: nearest "+jsscope.ConfigFileName+")")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		c.lintCmd(),
		c.eventsCmd(),
		c.tokensCmd(),
		c.diagnosticsCmd(),
		c.watchCmd(),
		c.serveCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = jsscope.LevelTrace
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig returns the --config file, the nearest configuration file
// above the working directory, or the defaults.
func (c *cli) loadConfig() (*jsscope.Config, error) {
	path := c.configPath
	if path == "" {
		found, err := jsscope.FindConfig(".")
		if errors.Is(err, jsscope.ErrNotFound) {
			return jsscope.DefaultProjectConfig(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	return jsscope.LoadConfig(path)
}

// buildSources returns a source for each -p path and argument: directories
// are walked, files are taken as given.
func (c *cli) buildSources(args []string) ([]jsscope.Source, error) {
	targets := append(append([]string{}, c.paths...), args...)
	if len(targets) == 0 {
		targets = []string{"."}
	}
	var sources []jsscope.Source
	var files []string
	for _, p := range targets {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		src, err := jsscope.DirTree(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(files) > 0 {
		sources = append(sources, jsscope.Files(files...))
	}
	return sources, nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(c.stdout, "jsscope %s\n", version())
		},
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
