package js

//go:generate go run ../cmd/jsscope-diaggen -in diagnostics.yaml -out diagkind_generated.go -pkg js

import (
	"fmt"
	"strconv"
	"strings"
)

// DiagKind identifies a diagnostic type. The set is closed; the constants
// and their metadata are generated from diagnostics.yaml.
type DiagKind int

// DiagField names the Diagnostic field a message argument reads.
type DiagField int

const (
	DiagFieldSpan DiagField = iota
	DiagFieldRelated
)

// DiagArgType tags how a message argument is rendered.
type DiagArgType int

const (
	// ArgSourceCodeSpan renders the source text under the span.
	ArgSourceCodeSpan DiagArgType = iota
	// ArgIdentifier renders the identifier under the span.
	ArgIdentifier
)

// DiagArg describes one message argument.
type DiagArg struct {
	Field DiagField
	Type  DiagArgType
}

// DiagInfo is the metadata of one diagnostic type.
type DiagInfo struct {
	Code     string
	Phase    string
	Severity Severity
	Message  string
	Args     []DiagArg
}

func (k DiagKind) valid() bool {
	return k >= 0 && int(k) < DiagKindCount
}

func (k DiagKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("DiagKind(%d)", int(k))
	}
	return diagKindNames[k]
}

// Info returns the metadata for the kind. Unknown kinds get a zero DiagInfo
// with Severity Error.
func (k DiagKind) Info() DiagInfo {
	if !k.valid() {
		return DiagInfo{Code: k.String(), Severity: SeverityError}
	}
	return diagInfos[k]
}

// Code returns the kebab-case code used in configuration and output.
func (k DiagKind) Code() string {
	return k.Info().Code
}

// Severity returns the default severity of the kind.
func (k DiagKind) Severity() Severity {
	return k.Info().Severity
}

// DiagKindByCode looks up a kind by its code.
func DiagKindByCode(code string) (DiagKind, bool) {
	for i := range diagInfos {
		if diagInfos[i].Code == code {
			return DiagKind(i), true
		}
	}
	return 0, false
}

// AllDiagKinds returns every diagnostic kind in declaration order.
func AllDiagKinds() []DiagKind {
	kinds := make([]DiagKind, DiagKindCount)
	for i := range kinds {
		kinds[i] = DiagKind(i)
	}
	return kinds
}

// FormatMessage expands a message template, replacing {N} with args[N].
// Out-of-range or malformed placeholders are left as written.
func FormatMessage(template string, args []string) string {
	if !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		n, err := strconv.Atoi(template[i+1 : i+end])
		if err != nil || n < 0 || n >= len(args) {
			b.WriteString(template[i : i+end+1])
		} else {
			b.WriteString(args[n])
		}
		i += end
	}
	return b.String()
}
