package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Golden is the expected visitor output for one source fixture.
type Golden struct {
	Events      []string `json:"events"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Fixture pairs a source file with its golden expectations.
type Fixture struct {
	Name       string
	SourcePath string
	GoldenPath string
	Source     []byte
}

// LoadFixtures returns every *.js, *.mjs and *.cjs file in dir, sorted by
// name. The golden file for "x.js" is "x.golden.json".
func LoadFixtures(t testing.TB, dir string) []Fixture {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read fixture dir %s: %v", dir, err)
	}
	var fixtures []Fixture
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".js" && ext != ".mjs" && ext != ".cjs" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read fixture %s: %v", path, err)
		}
		base := strings.TrimSuffix(e.Name(), ext)
		fixtures = append(fixtures, Fixture{
			Name:       base,
			SourcePath: path,
			GoldenPath: filepath.Join(dir, base+".golden.json"),
			Source:     src,
		})
	}
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Name < fixtures[j].Name
	})
	return fixtures
}

// LoadGolden reads a golden file.
func LoadGolden(t testing.TB, path string) Golden {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", path, err)
	}
	var g Golden
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("failed to parse golden %s: %v", path, err)
	}
	return g
}

// WriteGolden writes g to path, replacing any existing file.
func WriteGolden(t testing.TB, path string, g Golden) {
	t.Helper()
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		t.Fatalf("failed to encode golden %s: %v", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("failed to write golden %s: %v", path, err)
	}
}
