package jsscope

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions are the file extensions recognized as JavaScript files.
var DefaultExtensions = []string{".js", ".mjs", ".cjs"}

// DefaultSkipDirs are directory names DirTree and FS do not descend into.
var DefaultSkipDirs = []string{"node_modules", ".git"}

// Source finds JavaScript files by name. A name is a slash-separated path
// relative to the root of the source.
type Source interface {
	// Find opens a file by name.
	// Returns the file content, the path to report in diagnostics, or
	// fs.ErrNotExist if not found.
	Find(name string) (io.ReadCloser, string, error)

	// ListFiles returns the names of all JavaScript files known to this
	// source, sorted.
	ListFiles() ([]string, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
	skipDirs   []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions,
		skipDirs:   DefaultSkipDirs,
	}
}

// WithExtensions sets the file extensions to recognize for this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// WithSkipDirs sets the directory names a recursive source skips.
func WithSkipDirs(names ...string) SourceOption {
	return func(c *sourceConfig) {
		c.skipDirs = names
	}
}

// --- Dir Source (single directory, lazy) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source for the files of a single directory (no recursion).
// Files are looked up lazily on each Find() call.
func Dir(path string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &dirSource{path: path, config: cfg}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(path string, opts ...SourceOption) Source {
	src, err := Dir(path, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) Find(name string) (io.ReadCloser, string, error) {
	if strings.Contains(name, "/") || !hasValidExtension(name, makeExtensionSet(s.config.extensions)) {
		return nil, "", fs.ErrNotExist
	}
	fullPath := filepath.Join(s.path, name)
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fullPath, err
	}
	return f, fullPath, nil
}

func (s *dirSource) ListFiles() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	var files []string

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasValidExtension(entry.Name(), extSet) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	index map[string]string // name -> file path
	names []string
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction, skipping unreadable directories
// and those named by WithSkipDirs.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}

	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	extSet := makeExtensionSet(cfg.extensions)
	index := make(map[string]string)

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && slices.Contains(cfg.skipDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !hasValidExtension(p, extSet) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		index[filepath.ToSlash(rel)] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &treeSource{index: index, names: sortedNames(index)}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) Find(name string) (io.ReadCloser, string, error) {
	p, ok := s.index[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, p, err
	}
	return f, p, nil
}

func (s *treeSource) ListFiles() ([]string, error) {
	return slices.Clone(s.names), nil
}

// --- FS Source (for embed.FS, testing, http filesystems) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig

	once  sync.Once
	index map[string]string
	err   error
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// The name prefixes reported paths, as in "name:dir/file.js".
// It lazily indexes the filesystem on first use.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &fsSource{
		name:   name,
		fsys:   fsys,
		config: cfg,
	}
}

func (s *fsSource) Find(name string) (io.ReadCloser, string, error) {
	s.once.Do(func() {
		s.index, s.err = s.buildIndex()
	})
	if s.err != nil {
		return nil, "", s.err
	}

	p, ok := s.index[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := s.fsys.Open(p)
	if err != nil {
		return nil, s.name + ":" + p, err
	}
	return f, s.name + ":" + p, nil
}

func (s *fsSource) ListFiles() ([]string, error) {
	s.once.Do(func() {
		s.index, s.err = s.buildIndex()
	})
	if s.err != nil {
		return nil, s.err
	}
	return sortedNames(s.index), nil
}

func (s *fsSource) buildIndex() (map[string]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	index := make(map[string]string)

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && slices.Contains(s.config.skipDirs, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !hasValidExtension(p, extSet) {
			return nil
		}
		index[p] = p
		return nil
	})
	return index, err
}

// --- Files Source (explicit file list) ---

type filesSource struct {
	files map[string]string // name -> file path
}

// Files creates a Source for the given files, whatever their extension.
// Each file's name is its path in slash form.
func Files(paths ...string) Source {
	files := make(map[string]string, len(paths))
	for _, p := range paths {
		files[filepath.ToSlash(filepath.Clean(p))] = p
	}
	return &filesSource{files: files}
}

func (s *filesSource) Find(name string) (io.ReadCloser, string, error) {
	p, ok := s.files[name]
	if !ok {
		return nil, "", fs.ErrNotExist
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, p, err
	}
	return f, p, nil
}

func (s *filesSource) ListFiles() ([]string, error) {
	return sortedNames(s.files), nil
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one.
// Find() tries each source in order, returning the first match, and
// ListFiles() lists each name once.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Find(name string) (io.ReadCloser, string, error) {
	for _, src := range s.sources {
		r, p, err := src.Find(name)
		if err == nil {
			return r, p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, p, err
		}
	}
	return nil, "", fs.ErrNotExist
}

func (s *multiSource) ListFiles() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, src := range s.sources {
		names, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				files = append(files, name)
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

// --- Helpers ---

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(name string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(path.Ext(filepath.ToSlash(name)))
	_, ok := extSet[ext]
	return ok
}

func sortedNames(index map[string]string) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
