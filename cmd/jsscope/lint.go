package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/cmd/internal/cliutil"
	"github.com/jsscope/jsscope/js"
)

type lintFlags struct {
	level   string
	failAt  string
	ignore  []string
	globals []string
	node    bool
	format  string
	output  string
	summary bool
	quiet   bool
}

var lintFormats = []string{"text", "compact", "json", "sarif"}

func (c *cli) lintCmd() *cobra.Command {
	var f lintFlags
	cmd := &cobra.Command{
		Use:   "lint [PATH...]",
		Short: "Check files for syntax errors and variable misuse",
		Long: `Check JavaScript files (.js, .mjs, .cjs) for syntax errors and variable
misuse. Directories are searched recursively, skipping node_modules.
With no paths, the current directory is checked.

Severity levels: fatal, severe, error, minor, style, warning, info.
Strictness levels: strict, normal, permissive, silent.`,
		Example: `  jsscope lint src/
  jsscope lint --level strict --fail-at minor app.js
  jsscope lint --ignore "use-of-undeclared-*" src/
  jsscope lint --format sarif -o report.sarif src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(lintFormats, f.format) {
				return fmt.Errorf("unknown format %q", f.format)
			}
			project, err := c.loadConfig()
			if err != nil {
				return failed(err)
			}
			if err := f.apply(project); err != nil {
				return err
			}
			sources, err := c.buildSources(args)
			if err != nil {
				return failed(err)
			}

			opts := append(project.Options(), jsscope.WithSource(sources...))
			if logger := c.setupLogger(); logger != nil {
				opts = append(opts, jsscope.WithLogger(logger))
			}
			report, err := jsscope.Lint(cmd.Context(), opts...)
			if err != nil {
				return failed(err)
			}

			if !f.quiet {
				out, done, err := cliutil.GetOutput(f.output, c.stdout)
				if err != nil {
					return failed(err)
				}
				p := &printer{w: out, color: f.output == "" && cliutil.ColorEnabled(c.stdout, c.noColor)}
				err = p.printReport(report, f.format, f.summary)
				done()
				if err != nil {
					return failed(fmt.Errorf("output encoding failed: %w", err))
				}
			}
			for _, e := range report.Errors {
				cliutil.PrintError(c.stderr, "%v", e)
			}

			if report.HasFailures(project.DiagnosticConfig) || len(report.Errors) > 0 {
				return errFailures
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.level, "level", "", "strictness level: strict, normal, permissive, silent")
	flags.StringVar(&f.failAt, "fail-at", "", "exit non-zero for diagnostics at this severity or worse")
	flags.StringArrayVar(&f.ignore, "ignore", nil, `ignore diagnostic codes (repeatable, supports globs like "use-of-*")`)
	flags.StringArrayVar(&f.globals, "global", nil, "declare a global variable (repeatable)")
	flags.BoolVar(&f.node, "node", false, "assume Node.js globals")
	flags.StringVar(&f.format, "format", "text", "output format: text, compact, json, sarif")
	flags.StringVarP(&f.output, "output", "o", "", "write output to a file")
	flags.BoolVar(&f.summary, "summary", false, "show counts only")
	flags.BoolVar(&f.quiet, "quiet", false, "no output, exit code only")
	return cmd
}

// apply overrides the project configuration with the flags that were set.
func (f *lintFlags) apply(cfg *jsscope.Config) error {
	if f.level != "" {
		level, err := js.ParseStrictnessLevel(f.level)
		if err != nil {
			return err
		}
		preset := presetConfig(level)
		cfg.Level = preset.Level
		cfg.Ignore = append(cfg.Ignore, preset.Ignore...)
	}
	if f.failAt != "" {
		sev, err := js.ParseSeverity(f.failAt)
		if err != nil {
			return err
		}
		cfg.FailAt = sev
	}
	cfg.Ignore = append(cfg.Ignore, f.ignore...)
	cfg.Globals = append(cfg.Globals, f.globals...)
	if f.node {
		cfg.Node = true
	}
	return nil
}

func presetConfig(level js.StrictnessLevel) js.DiagnosticConfig {
	switch level {
	case js.StrictnessStrict:
		return js.StrictConfig()
	case js.StrictnessPermissive:
		return js.PermissiveConfig()
	case js.StrictnessSilent:
		return js.SilentConfig()
	default:
		return js.DefaultConfig()
	}
}
