package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/cmd/internal/cliutil"
	"github.com/jsscope/jsscope/internal/lexer"
	"github.com/jsscope/jsscope/js"
)

// readInput reads the named file, or stdin for "-".
func (c *cli) readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(c.stdin)
	}
	return os.ReadFile(name)
}

type eventsJSON struct {
	File        string              `json:"file"`
	Outcome     string              `json:"outcome"`
	Events      []js.Event          `json:"events"`
	Diagnostics []js.FileDiagnostic `json:"diagnostics"`
}

func (c *cli) eventsCmd() *cobra.Command {
	var asJSON, withSpans bool
	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Print the scope and variable events of a file",
		Long: `Print the visitor events the parser emits for FILE ("-" reads stdin):
scope entries and exits, declarations, uses, assignments and property
declarations, followed by any syntax diagnostics.`,
		Example: `  jsscope events app.js
  echo 'let x = y;' | jsscope events --spans -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.readInput(args[0])
			if err != nil {
				return failed(err)
			}
			var rec js.Recorder
			outcome := jsscope.ParseModule(src, &rec, jsscope.WithLogger(c.setupLogger()))

			loc := js.NewLocator(src)
			dc := js.StrictConfig()
			diags := make([]js.FileDiagnostic, 0, len(rec.Diagnostics()))
			for _, d := range rec.Diagnostics() {
				diags = append(diags, js.Resolve(d, args[0], src, loc, dc))
			}

			p := &printer{w: c.stdout, color: cliutil.ColorEnabled(c.stdout, c.noColor)}
			if asJSON {
				return p.encode(eventsJSON{
					File:        args[0],
					Outcome:     outcome.String(),
					Events:      rec.Events(),
					Diagnostics: diags,
				})
			}
			for _, e := range rec.Events() {
				if withSpans && e.Kind.HasName() {
					pos := loc.Position(e.Span.Start)
					p.printf("%-40s %s [%d,%d)\n", e, pos, e.Span.Start, e.Span.End)
					continue
				}
				p.printf("%s\n", e)
			}
			for _, d := range diags {
				p.printDiagnostic(d)
			}
			if outcome == js.OutcomeFatal {
				return errFailures
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&withSpans, "spans", false, "show the position of named events")
	return cmd
}

func (c *cli) tokensCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "tokens FILE",
		Short:   "Print the token stream of a file",
		Example: `  jsscope tokens app.js`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := c.readInput(args[0])
			if err != nil {
				return failed(err)
			}
			tokens, diags := lexer.New(src, c.setupLogger()).Tokenize()

			type tokenJSON struct {
				Kind    string  `json:"kind"`
				Span    js.Span `json:"span"`
				Text    string  `json:"text"`
				Newline bool    `json:"newline_before,omitempty"`
			}
			out := make([]tokenJSON, len(tokens))
			for i, tok := range tokens {
				out[i] = tokenJSON{
					Kind:    tok.Kind.String(),
					Span:    tok.Span,
					Text:    tok.Text(src),
					Newline: tok.NewlineBefore,
				}
			}

			p := &printer{w: c.stdout}
			if asJSON {
				return p.encode(out)
			}
			loc := js.NewLocator(src)
			for _, tok := range out {
				nl := ""
				if tok.Newline {
					nl = " (newline before)"
				}
				p.printf("%-8s %-16s %q%s\n", loc.Position(tok.Span.Start), tok.Kind, tok.Text, nl)
			}
			for _, d := range diags {
				p.printDiagnostic(js.Resolve(d, args[0], src, loc, js.StrictConfig()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func (c *cli) diagnosticsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "List the diagnostics jsscope can report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type entry struct {
				Code     string      `json:"code"`
				Name     string      `json:"name"`
				Phase    string      `json:"phase"`
				Severity js.Severity `json:"severity"`
				Message  string      `json:"message"`
			}
			var entries []entry
			for _, kind := range js.AllDiagKinds() {
				info := kind.Info()
				entries = append(entries, entry{
					Code:     info.Code,
					Name:     kind.String(),
					Phase:    info.Phase,
					Severity: info.Severity,
					Message:  info.Message,
				})
			}

			p := &printer{w: c.stdout}
			if asJSON {
				return p.encode(entries)
			}
			for _, e := range entries {
				p.printf("%-36s %-9s %-8s %s\n", e.Code, e.Phase, e.Severity, e.Message)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
