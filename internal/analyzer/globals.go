package analyzer

import (
	"maps"
	"slices"
)

// Globals is the set of names a module may use without declaring them.
// Each name is writable or not.
type Globals struct {
	names map[string]bool
}

// ECMAScript value, function, constructor and namespace properties of the
// global object.
var ecmaScriptGlobals = []string{
	"globalThis",

	"decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent",
	"eval", "isFinite", "isNaN", "parseFloat", "parseInt",

	"AggregateError", "Array", "ArrayBuffer", "BigInt", "BigInt64Array",
	"BigUint64Array", "Boolean", "DataView", "Date", "Error", "EvalError",
	"FinalizationRegistry", "Float32Array", "Float64Array", "Function",
	"Int16Array", "Int32Array", "Int8Array", "Map", "Number", "Object",
	"Promise", "Proxy", "RangeError", "ReferenceError", "RegExp", "Set",
	"SharedArrayBuffer", "String", "Symbol", "SyntaxError", "TypeError",
	"URIError", "Uint16Array", "Uint32Array", "Uint8Array",
	"Uint8ClampedArray", "WeakMap", "WeakRef", "WeakSet",

	"Atomics", "JSON", "Math", "Reflect", "Intl", "WebAssembly",
}

var constGlobals = []string{"Infinity", "NaN", "undefined"}

var browserGlobals = []string{
	"window", "self", "document", "navigator", "location", "history",
	"console", "performance", "crypto", "localStorage", "sessionStorage",
	"alert", "confirm", "prompt", "fetch", "atob", "btoa", "structuredClone",
	"queueMicrotask", "setTimeout", "clearTimeout", "setInterval",
	"clearInterval", "requestAnimationFrame", "cancelAnimationFrame",
	"Event", "EventTarget", "CustomEvent", "Node", "Element", "HTMLElement",
	"XMLHttpRequest", "WebSocket", "Worker", "Blob", "File", "FileReader",
	"FormData", "Headers", "Request", "Response", "URL", "URLSearchParams",
	"TextEncoder", "TextDecoder", "AbortController", "AbortSignal",
}

var nodeGlobals = []string{
	"Buffer", "GLOBAL", "TextDecoder", "TextEncoder", "URL",
	"URLSearchParams", "clearImmediate", "clearInterval", "clearTimeout",
	"console", "escape", "global", "process", "queueMicrotask", "root",
	"setImmediate", "setInterval", "setTimeout", "unescape",
	// CommonJS module wrapper
	"__dirname", "__filename", "exports", "module", "require",
}

// NewGlobals returns the ECMAScript and browser globals, plus the Node.js
// globals if node is set, plus extra as writable names.
func NewGlobals(node bool, extra ...string) *Globals {
	g := &Globals{names: make(map[string]bool, 160)}
	for _, name := range ecmaScriptGlobals {
		g.Add(name, true)
	}
	for _, name := range browserGlobals {
		g.Add(name, true)
	}
	for _, name := range constGlobals {
		g.Add(name, false)
	}
	if node {
		for _, name := range nodeGlobals {
			g.Add(name, true)
		}
	}
	for _, name := range extra {
		g.Add(name, true)
	}
	return g
}

// DefaultGlobals returns NewGlobals(false).
func DefaultGlobals() *Globals {
	return NewGlobals(false)
}

// Add declares name. A name already present keeps the stricter of the two
// writability settings.
func (g *Globals) Add(name string, writable bool) {
	if prev, ok := g.names[name]; ok {
		writable = writable && prev
	}
	g.names[name] = writable
}

// Lookup reports whether name is a global and whether it may be assigned.
func (g *Globals) Lookup(name string) (writable, ok bool) {
	writable, ok = g.names[name]
	return writable, ok
}

// Names returns the global names in sorted order.
func (g *Globals) Names() []string {
	return slices.Sorted(maps.Keys(g.names))
}

// Len returns the number of globals.
func (g *Globals) Len() int {
	return len(g.names)
}
