// Command jsscope-diaggen generates the diagnostic kind table of package js
// from its YAML catalog.
//
// Usage:
//
//	jsscope-diaggen -in diagnostics.yaml -out diagkind_generated.go -pkg js
//
//nolint:errcheck // CLI tool, fmt output errors are not critical
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsscope-diaggen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var in, out, pkg string
	var check bool
	fs.StringVar(&in, "in", "diagnostics.yaml", "catalog to read")
	fs.StringVar(&out, "out", "", "file to write (default: stdout)")
	fs.StringVar(&pkg, "pkg", "js", "package name of the generated file")
	fs.BoolVar(&check, "check", false, "fail if -out is not up to date instead of writing it")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: jsscope-diaggen [options]

Generate the DiagKind constants and metadata table from a diagnostics
catalog.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}
	if check && out == "" {
		fmt.Fprintln(stderr, "error: -check requires -out")
		return 2
	}

	data, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	cat, err := parseCatalog(data)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s: %v\n", in, err)
		return 1
	}
	src, err := generate(cat, pkg, filepath.Base(in))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch {
	case out == "":
		stdout.Write(src)
	case check:
		current, err := os.ReadFile(out)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		if !bytes.Equal(current, src) {
			fmt.Fprintf(stderr, "%s is out of date; run go generate\n", out)
			return 1
		}
	default:
		if err := os.WriteFile(out, src, 0o644); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}
	return 0
}
