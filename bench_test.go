package jsscope

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jsscope/jsscope/js"
)

// benchSource concatenates the corpus fixtures that parse without a fatal
// error, repeated to a few hundred kilobytes.
func benchSource(b *testing.B) []byte {
	b.Helper()
	var buf bytes.Buffer
	for _, name := range []string{"closures.js", "undeclared.js", "bindings.js", "classes.js"} {
		data, err := os.ReadFile("testdata/corpus/" + name)
		if err != nil {
			b.Fatalf("reading %s: %v", name, err)
		}
		buf.Write(data)
	}
	unit := buf.Bytes()
	var out bytes.Buffer
	for out.Len() < 256<<10 {
		// Each copy goes in its own block so repeated declarations do not
		// turn into redeclarations.
		out.WriteString("{\n")
		out.Write(unit)
		out.WriteString("}\n")
	}
	return out.Bytes()
}

func BenchmarkParseModule(b *testing.B) {
	src := benchSource(b)
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for b.Loop() {
		ParseModule(src, js.NopVisitor{})
	}
}

func BenchmarkCheck(b *testing.B) {
	src := benchSource(b)
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for b.Loop() {
		_ = Check(src, nil)
	}
}

func BenchmarkCheckCached(b *testing.B) {
	src := benchSource(b)
	cache, err := NewCache(0)
	if err != nil {
		b.Fatalf("NewCache failed: %v", err)
	}
	b.SetBytes(int64(len(src)))

	b.ResetTimer()
	for b.Loop() {
		_ = Check(src, nil, WithCache(cache))
	}
}

func BenchmarkLintCorpus(b *testing.B) {
	src, err := DirTree("testdata/corpus")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if _, err := Lint(ctx, WithSource(src)); err != nil {
			b.Fatalf("Lint failed: %v", err)
		}
	}
}

func BenchmarkParseDeepNesting(b *testing.B) {
	for _, depth := range []int{1000, 4000} {
		inputs := []struct {
			name, open string
		}{
			{"parens", "("},
			{"arrows", "f(() => "},
		}
		for _, in := range inputs {
			src := []byte(strings.Repeat(in.open, depth) + "x" + strings.Repeat(")", depth) + ";\n")
			b.Run(fmt.Sprintf("parse/%s/%d", in.name, depth), func(b *testing.B) {
				b.SetBytes(int64(len(src)))
				for b.Loop() {
					ParseModule(src, js.NopVisitor{})
				}
			})
			b.Run(fmt.Sprintf("check/%s/%d", in.name, depth), func(b *testing.B) {
				b.SetBytes(int64(len(src)))
				for b.Loop() {
					_ = Check(src, nil)
				}
			})
		}
	}
}
