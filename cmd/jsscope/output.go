package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/js"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

var severityOrder = []js.Severity{
	js.SeverityFatal, js.SeveritySevere, js.SeverityError, js.SeverityMinor,
	js.SeverityStyle, js.SeverityWarning, js.SeverityInfo,
}

type printer struct {
	w     io.Writer
	color bool
}

func (p *printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *printer) severity(sev js.Severity) string {
	s := sev.String()
	switch {
	case sev <= js.SeverityError:
		return p.paint(ansiBold+ansiRed, s)
	case sev <= js.SeverityStyle:
		return p.paint(ansiYellow, s)
	default:
		return p.paint(ansiCyan, s)
	}
}

func (p *printer) printReport(r *jsscope.Report, format string, summaryOnly bool) error {
	switch format {
	case "json":
		return p.printJSON(r)
	case "sarif":
		return p.printSARIF(r)
	case "compact":
		if summaryOnly {
			p.printCompactSummary(r)
			return nil
		}
		for _, d := range r.Diagnostics() {
			p.printDiagnostic(d)
		}
		return nil
	default:
		if !summaryOnly {
			for _, d := range r.Diagnostics() {
				p.printDiagnostic(d)
			}
		}
		p.printSummary(r)
		return nil
	}
}

func location(d js.FileDiagnostic) string {
	switch {
	case d.Line > 0 && d.Column > 0:
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
	case d.Line > 0:
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	default:
		return d.File
	}
}

func (p *printer) printDiagnostic(d js.FileDiagnostic) {
	p.printf("%s: %s [%s] %s\n", location(d), p.severity(d.Severity), d.Code, d.Message)
}

func (p *printer) printSummary(r *jsscope.Report) {
	files := fmt.Sprintf("%s %s (%s)",
		humanize.Comma(int64(len(r.Files))), plural(len(r.Files), "file", "files"),
		humanize.Bytes(uint64(r.Bytes())))
	total := len(r.Diagnostics())
	if total == 0 {
		p.printf("No issues found in %s\n", files)
	} else {
		p.printf("\nChecked %s, found %s %s:\n", files,
			humanize.Comma(int64(total)), plural(total, "issue", "issues"))
		counts := r.Counts()
		for _, sev := range severityOrder {
			if n := counts[sev]; n > 0 {
				p.printf("  %-8s %d\n", sev.String()+":", n)
			}
		}
	}
	if n := len(r.Skipped); n > 0 {
		p.printf("Skipped %d binary %s\n", n, plural(n, "file", "files"))
	}
	if n := len(r.Errors); n > 0 {
		p.printf("Could not read %d %s\n", n, plural(n, "file", "files"))
	}
}

func (p *printer) printCompactSummary(r *jsscope.Report) {
	total := len(r.Diagnostics())
	p.printf("%d %s", total, plural(total, "issue", "issues"))
	counts := r.Counts()
	var parts []string
	for _, sev := range severityOrder {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	if len(parts) > 0 {
		p.printf(" (%s)", strings.Join(parts, ", "))
	}
	p.printf("\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

type lintJSON struct {
	Files   []jsscope.FileResult `json:"files"`
	Errors  []fileErrorJSON      `json:"errors,omitempty"`
	Skipped []string             `json:"skipped,omitempty"`
	Summary lintSummary          `json:"summary"`
}

type fileErrorJSON struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type lintSummary struct {
	Files      int            `json:"files"`
	Bytes      int64          `json:"bytes"`
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
}

func (p *printer) printJSON(r *jsscope.Report) error {
	out := lintJSON{
		Files:   r.Files,
		Skipped: r.Skipped,
		Summary: lintSummary{
			Files:      len(r.Files),
			Bytes:      r.Bytes(),
			Total:      len(r.Diagnostics()),
			BySeverity: make(map[string]int),
		},
	}
	if out.Files == nil {
		out.Files = []jsscope.FileResult{}
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, fileErrorJSON{Path: e.Path, Error: e.Err.Error()})
	}
	for sev, n := range r.Counts() {
		out.Summary.BySeverity[sev.String()] = n
	}
	return p.encode(out)
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SARIF (Static Analysis Results Interchange Format) output
// https://sarifweb.azurewebsites.net/
func (p *printer) printSARIF(r *jsscope.Report) error {
	diags := r.Diagnostics()
	sarif := sarifOutput{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{
				Driver: sarifDriver{
					Name:           "jsscope",
					Version:        version(),
					InformationURI: "https://github.com/jsscope/jsscope",
					Rules:          buildSARIFRules(diags),
				},
			},
			Results: buildSARIFResults(diags),
		}},
	}
	return p.encode(sarif)
}

type sarifOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration,omitempty"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

func buildSARIFRules(diags []js.FileDiagnostic) []sarifRule {
	seen := make(map[string]bool)
	var rules []sarifRule

	for _, d := range diags {
		if d.Code == "" || seen[d.Code] {
			continue
		}
		seen[d.Code] = true
		description := d.Code
		sev := d.Severity
		if kind, ok := js.DiagKindByCode(d.Code); ok {
			description = kind.Info().Message
			sev = kind.Severity()
		}
		rules = append(rules, sarifRule{
			ID:               d.Code,
			ShortDescription: sarifMessage{Text: description},
			DefaultConfig:    sarifDefaultConfig{Level: severityToSARIF(sev)},
		})
	}

	slices.SortFunc(rules, func(a, b sarifRule) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return rules
}

func buildSARIFResults(diags []js.FileDiagnostic) []sarifResult {
	results := []sarifResult{}

	for _, d := range diags {
		r := sarifResult{
			RuleID:  d.Code,
			Level:   severityToSARIF(d.Severity),
			Message: sarifMessage{Text: d.Message},
		}

		if d.File != "" {
			loc := sarifLocation{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifact{URI: d.File},
					Region: &sarifRegion{
						StartLine:   d.Line,
						StartColumn: d.Column,
						ByteOffset:  int(d.Start),
						ByteLength:  int(d.End - d.Start),
					},
				},
			}
			r.Locations = append(r.Locations, loc)
		}

		results = append(results, r)
	}

	return results
}

func severityToSARIF(sev js.Severity) string {
	switch {
	case sev <= js.SeverityError:
		return "error"
	case sev <= js.SeverityStyle:
		return "warning"
	default:
		return "note"
	}
}
