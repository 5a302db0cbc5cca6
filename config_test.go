package jsscope

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsscope/jsscope/internal/testutil"
	"github.com/jsscope/jsscope/js"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
level: strict
fail-at: warning
ignore:
  - use-of-undeclared-*
overrides:
  redeclaration-of-variable: warning
globals: [jQuery, $]
node: true
`))
	testutil.NoError(t, err)
	testutil.Equal(t, js.StrictnessStrict, cfg.Level)
	testutil.Equal(t, js.SeverityWarning, cfg.FailAt)
	testutil.SliceEqual(t, []string{"use-of-undeclared-*"}, cfg.Ignore)
	testutil.Equal(t, js.SeverityWarning, cfg.Overrides["redeclaration-of-variable"])
	testutil.SliceEqual(t, []string{"jQuery", "$"}, cfg.Globals)
	testutil.True(t, cfg.Node)
}

func TestParseConfigDefaults(t *testing.T) {
	for _, data := range []string{"", "# nothing\n", "node: false\n"} {
		cfg, err := ParseConfig([]byte(data))
		testutil.NoError(t, err, "%q", data)
		testutil.Equal(t, js.StrictnessNormal, cfg.Level, "%q", data)
		testutil.Equal(t, js.SeverityError, cfg.FailAt, "%q", data)
		testutil.False(t, cfg.Node)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []string{
		"level: loud\n",
		"fail-at: whenever\n",
		"unknown-key: 1\n",
		"globals: jQuery\n",
		"overrides:\n  x: sometimes\n",
	}
	for _, data := range tests {
		_, err := ParseConfig([]byte(data))
		testutil.Error(t, err, "%q", data)
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultProjectConfig()
	src := []byte("$('a'); process.exit();")
	testutil.Len(t, Check(src, nil, cfg.Options()...).Diagnostics, 2)

	cfg.Globals = []string{"$"}
	cfg.Node = true
	testutil.Len(t, Check(src, nil, cfg.Options()...).Diagnostics, 0)
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	testutil.NoError(t, os.MkdirAll(nested, 0o755))
	configPath := filepath.Join(root, "a", ConfigFileName)
	testutil.NoError(t, os.WriteFile(configPath, []byte("level: permissive\n"), 0o644))

	found, err := FindConfig(nested)
	testutil.NoError(t, err)
	testutil.Equal(t, configPath, found)

	cfg, err := LoadConfig(found)
	testutil.NoError(t, err)
	testutil.Equal(t, js.StrictnessPermissive, cfg.Level)
	testutil.Equal(t, found, cfg.Path)

	// A directory with the config file's name is not a config file.
	testutil.NoError(t, os.Mkdir(filepath.Join(nested, ConfigFileName), 0o755))
	found, err = FindConfig(nested)
	testutil.NoError(t, err)
	testutil.Equal(t, configPath, found)
}

func TestFindConfigNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := FindConfig(root)
	if err == nil {
		t.Skip("a configuration file exists above the temporary directory")
	}
	testutil.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	testutil.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	path := filepath.Join(t.TempDir(), ConfigFileName)
	testutil.NoError(t, os.WriteFile(path, []byte("level: [\n"), 0o644))
	_, err = LoadConfig(path)
	testutil.Error(t, err)
	testutil.Contains(t, err.Error(), path)
}
