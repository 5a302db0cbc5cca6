package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/cmd/internal/cliutil"
)

// watchDebounce is how long a file must stay unchanged before it is
// checked again.
const watchDebounce = 100 * time.Millisecond

func (c *cli) watchCmd() *cobra.Command {
	var f lintFlags
	cmd := &cobra.Command{
		Use:   "watch [PATH...]",
		Short: "Lint files, then check them again whenever they change",
		Example: `  jsscope watch src/
  jsscope watch --node server.js`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := c.loadConfig()
			if err != nil {
				return failed(err)
			}
			if err := f.apply(project); err != nil {
				return err
			}
			targets := append(append([]string{}, c.paths...), args...)
			if len(targets) == 0 {
				targets = []string{"."}
			}
			sources, err := c.buildSources(args)
			if err != nil {
				return failed(err)
			}
			cache, err := jsscope.NewCache(0)
			if err != nil {
				return failed(err)
			}
			opts := append(project.Options(), jsscope.WithCache(cache))
			if logger := c.setupLogger(); logger != nil {
				opts = append(opts, jsscope.WithLogger(logger))
			}

			p := &printer{w: c.stdout, color: cliutil.ColorEnabled(c.stdout, c.noColor)}
			report, err := jsscope.Lint(cmd.Context(), append(opts, jsscope.WithSource(sources...))...)
			if err != nil {
				return failed(err)
			}
			_ = p.printReport(report, "text", false)

			set, err := newWatchSet(targets)
			if err != nil {
				return failed(err)
			}
			dirs := set.dirs
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return failed(err)
			}
			defer watcher.Close() //nolint:errcheck // closing on exit
			for _, dir := range dirs {
				if err := watcher.Add(dir); err != nil {
					cliutil.PrintError(c.stderr, "cannot watch %s: %v", dir, err)
				}
			}
			p.printf("Watching %d %s for changes\n", len(dirs), plural(len(dirs), "directory", "directories"))

			var mu sync.Mutex
			timers := make(map[string]*time.Timer)
			check := func(path string) {
				mu.Lock()
				delete(timers, path)
				mu.Unlock()

				content, err := os.ReadFile(path)
				if err != nil {
					return
				}
				_, diags := jsscope.CheckFile(path, content, opts...)
				mu.Lock()
				defer mu.Unlock()
				for _, d := range diags {
					p.printDiagnostic(d)
				}
				p.printf("%s: %d %s\n", path, len(diags), plural(len(diags), "issue", "issues"))
			}

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					if !set.matches(event.Name) {
						continue
					}
					mu.Lock()
					if t, ok := timers[event.Name]; ok {
						t.Reset(watchDebounce)
					} else {
						name := event.Name
						timers[name] = time.AfterFunc(watchDebounce, func() { check(name) })
					}
					mu.Unlock()

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					cliutil.PrintError(c.stderr, "watcher error: %v", err)
				}
			}
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.level, "level", "", "strictness level: strict, normal, permissive, silent")
	flags.StringArrayVar(&f.ignore, "ignore", nil, "ignore diagnostic codes (repeatable)")
	flags.StringArrayVar(&f.globals, "global", nil, "declare a global variable (repeatable)")
	flags.BoolVar(&f.node, "node", false, "assume Node.js globals")
	return cmd
}

func isJSFile(name string) bool {
	return slices.Contains(jsscope.DefaultExtensions, strings.ToLower(filepath.Ext(name)))
}

// watchSet is what the watch command watches: every directory below a
// directory target, except hidden ones and those DirTree skips, and the
// parent of each file target.
type watchSet struct {
	dirs  []string
	trees map[string]bool // directories whose JavaScript files are linted
	files map[string]bool // file targets
}

func newWatchSet(targets []string) (*watchSet, error) {
	set := &watchSet{
		trees: make(map[string]bool),
		files: make(map[string]bool),
	}
	seen := make(map[string]bool)
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			set.dirs = append(set.dirs, dir)
		}
	}
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			set.files[watchKey(target)] = true
			add(filepath.Dir(target))
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if path != target && (strings.HasPrefix(d.Name(), ".") || slices.Contains(jsscope.DefaultSkipDirs, d.Name())) {
				return filepath.SkipDir
			}
			set.trees[watchKey(path)] = true
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(set.dirs)
	return set, nil
}

// matches reports whether a change to the named file should be checked.
// Files next to a file target are ignored unless a directory target
// covers them too.
func (s *watchSet) matches(name string) bool {
	key := watchKey(name)
	if s.files[key] {
		return true
	}
	return isJSFile(name) && s.trees[filepath.Dir(key)]
}

func watchKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
