package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsscope/jsscope"
	"github.com/jsscope/jsscope/internal/transport"
	"github.com/jsscope/jsscope/js"
)

func (c *cli) serveCmd() *cobra.Command {
	var cacheSize int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Check buffers sent as framed JSON requests on stdin",
		Long: `Read requests from stdin and write one response per request to stdout.
Each message is a JSON body preceded by a Content-Length header:

  Content-Length: 44

  {"id":1,"name":"app.js","text":"let x = y;"}

A request names a file with "path" or carries the buffer in "text".
Set "events" to receive the parser's event stream as well. Parse results
are cached by content, so checking an unchanged buffer again is cheap.
The server stops at end of input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := c.loadConfig()
			if err != nil {
				return failed(err)
			}
			cache, err := jsscope.NewCache(cacheSize)
			if err != nil {
				return failed(err)
			}
			opts := append(project.Options(), jsscope.WithCache(cache))
			logger := c.setupLogger()
			if logger != nil {
				opts = append(opts, jsscope.WithLogger(logger))
			}

			r := transport.NewReader(c.stdin)
			w := transport.NewWriter(c.stdout)
			ctx := cmd.Context()
			for ctx.Err() == nil {
				data, err := r.ReadRaw()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return failed(err)
				}
				var req transport.Request
				var resp transport.Response
				if err := json.Unmarshal(data, &req); err != nil {
					resp = transport.Response{
						Diagnostics: []js.FileDiagnostic{},
						Error:       fmt.Sprintf("decoding request: %v", err),
					}
				} else {
					resp = serveRequest(req, opts)
				}
				if err := w.Write(resp); err != nil {
					return failed(err)
				}
			}
			if logger != nil {
				hits, misses := cache.Stats()
				logger.Debug("serve finished", "cache_hits", hits, "cache_misses", misses)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&cacheSize, "cache-size", jsscope.DefaultCacheSize, "number of parse results to keep")
	return cmd
}

func serveRequest(req transport.Request, opts []jsscope.Option) transport.Response {
	resp := transport.Response{
		ID:          req.ID,
		Path:        req.Path,
		Diagnostics: []js.FileDiagnostic{},
	}
	name := req.Name
	content := []byte(req.Text)
	if req.Path != "" {
		data, err := os.ReadFile(req.Path)
		if err != nil {
			resp.Error = err.Error()
			return resp
		}
		name, content = req.Path, data
	}
	if name == "" {
		name = "<input>"
	}

	outcome, diags := jsscope.CheckFile(name, content, opts...)
	resp.Outcome = outcome.String()
	resp.Diagnostics = diags
	if req.Events {
		var rec js.Recorder
		jsscope.ParseModule(content, &rec, opts...)
		resp.Events = rec.Events()
	}
	return resp
}
