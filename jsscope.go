package jsscope

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"

	"github.com/jsscope/jsscope/internal/analyzer"
	"github.com/jsscope/jsscope/internal/parser"
	"github.com/jsscope/jsscope/js"
)

// ErrNoSources is returned when Lint is called with no sources.
var ErrNoSources = errors.New("no JavaScript sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, visitor events, scopes).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// Option configures parsing, checking and linting.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	diagConfig js.DiagnosticConfig
	sources    []Source
	cache      *Cache
	globals    []string
	node       bool
}

func newConfig(opts []Option) *config {
	cfg := &config{diagConfig: js.DefaultConfig()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithDiagnosticConfig sets the diagnostic filtering used by Lint.
// The default is js.DefaultConfig().
func WithDiagnosticConfig(dc js.DiagnosticConfig) Option {
	return func(c *config) { c.diagConfig = dc }
}

// WithSource adds sources of files for Lint. It may be given more than once.
func WithSource(sources ...Source) Option {
	return func(c *config) { c.sources = append(c.sources, sources...) }
}

// WithCache makes ParseModule, Check and Lint reuse results for content
// they have seen before.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// WithGlobals declares extra writable global names for the variable
// analyzer.
func WithGlobals(names ...string) Option {
	return func(c *config) { c.globals = append(c.globals, names...) }
}

// WithNodeGlobals makes the Node.js globals (require, module, process,
// Buffer, ...) known to the variable analyzer.
func WithNodeGlobals() Option {
	return func(c *config) { c.node = true }
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

func (c *config) analyzerGlobals() *analyzer.Globals {
	return analyzer.NewGlobals(c.node, c.globals...)
}

func (c *config) parseModule(src []byte, v js.Visitor) js.Outcome {
	logger := componentLogger(c.logger, "parser")
	if c.cache != nil {
		return c.cache.parseModule(src, v, logger, componentLogger(c.logger, "cache"))
	}
	return parser.New(src, v, logger).ParseModule()
}

// ParseModule parses src as a whole module and reports its events to v,
// starting with enter_module and ending with end_of_module unless a fatal
// error stops the parse first.
//
// Example:
//
//	var rec js.Recorder
//	outcome := jsscope.ParseModule(src, &rec, jsscope.WithLogger(slog.Default()))
func ParseModule(src []byte, v js.Visitor, opts ...Option) js.Outcome {
	return newConfig(opts).parseModule(src, v)
}

// ParseExpression parses a single expression from src and reports its
// events to v.
func ParseExpression(src []byte, v js.Visitor, opts ...Option) js.Outcome {
	return NewSession(src, v, opts...).ParseExpression()
}

// Session parses one buffer in steps. The parse position carries over
// between calls, so repeated ParseStatement calls walk the buffer one
// statement at a time. A Session must not be used from more than one
// goroutine at once.
type Session struct {
	p *parser.Parser
}

// NewSession returns a Session over src reporting to v. Only WithLogger
// applies to a Session.
func NewSession(src []byte, v js.Visitor, opts ...Option) *Session {
	cfg := newConfig(opts)
	return &Session{p: parser.New(src, v, componentLogger(cfg.logger, "parser"))}
}

// ParseModule parses the rest of the buffer as a module.
func (s *Session) ParseModule() js.Outcome { return s.p.ParseModule() }

// ParseStatement parses the next statement.
func (s *Session) ParseStatement() js.Outcome { return s.p.ParseStatement() }

// ParseExpression parses the next expression.
func (s *Session) ParseExpression() js.Outcome { return s.p.ParseExpression() }

// AtEOF reports whether the whole buffer has been consumed, or a fatal
// error has stopped the session.
func (s *Session) AtEOF() bool { return s.p.AtEOF() }

// Result is what Check found in one buffer.
type Result struct {
	Outcome js.Outcome
	// Diagnostics holds parser and analyzer diagnostics ordered by
	// position.
	Diagnostics []js.Diagnostic
}

type diagnosticSink struct {
	js.NopVisitor
	list js.DiagnosticList
}

func (s *diagnosticSink) VisitDiagnostic(d js.Diagnostic) { s.list.Add(d) }

// Check parses src as a module and runs the variable analyzer over it.
// If v is not nil it also receives every event.
func Check(src []byte, v js.Visitor, opts ...Option) *Result {
	cfg := newConfig(opts)
	return cfg.check(src, v, cfg.analyzerGlobals())
}

func (c *config) check(src []byte, v js.Visitor, globals *analyzer.Globals) *Result {
	var sink diagnosticSink
	a := analyzer.New(globals, componentLogger(c.logger, "analyzer"))
	visitors := []js.Visitor{&sink, a}
	if v != nil {
		visitors = append(visitors, v)
	}
	outcome := c.parseModule(src, js.Multi(visitors...))

	diags := append(sink.list.All(), a.Diagnostics()...)
	slices.SortStableFunc(diags, func(a, b js.Diagnostic) int {
		if n := cmp.Compare(a.Span.Start, b.Span.Start); n != 0 {
			return n
		}
		return cmp.Compare(a.Span.End, b.Span.End)
	})
	return &Result{Outcome: outcome, Diagnostics: diags}
}
