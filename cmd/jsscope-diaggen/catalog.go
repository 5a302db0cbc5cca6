package main

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// catalog is the parsed form of diagnostics.yaml.
type catalog struct {
	Diagnostics []entry `yaml:"diagnostics"`
}

type entry struct {
	Name     string `yaml:"name"`
	Code     string `yaml:"code"`
	Phase    string `yaml:"phase"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
	Args     []arg  `yaml:"args"`
}

type arg struct {
	Field string `yaml:"field"`
	Type  string `yaml:"type"`
}

var (
	severityConsts = map[string]string{
		"fatal":   "SeverityFatal",
		"severe":  "SeveritySevere",
		"error":   "SeverityError",
		"minor":   "SeverityMinor",
		"style":   "SeverityStyle",
		"warning": "SeverityWarning",
		"info":    "SeverityInfo",
	}
	fieldConsts = map[string]string{
		"span":    "DiagFieldSpan",
		"related": "DiagFieldRelated",
	}
	argTypeConsts = map[string]string{
		"source_code_span": "ArgSourceCodeSpan",
		"identifier":       "ArgIdentifier",
	}
	phases = map[string]bool{"lexer": true, "parser": true, "analyzer": true}

	namePattern        = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	codePattern        = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)
)

var errEmptyCatalog = errors.New("catalog has no diagnostics")

// parseCatalog decodes and validates a catalog. Unknown keys are errors so
// that a misspelled field does not silently drop metadata.
func parseCatalog(data []byte) (*catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cat catalog
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if len(cat.Diagnostics) == 0 {
		return nil, errEmptyCatalog
	}

	names := make(map[string]bool)
	codes := make(map[string]bool)
	for i, e := range cat.Diagnostics {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("diagnostic %d (%s): %w", i, e.Name, err)
		}
		if names[e.Name] {
			return nil, fmt.Errorf("duplicate diagnostic name %s", e.Name)
		}
		if codes[e.Code] {
			return nil, fmt.Errorf("duplicate diagnostic code %s", e.Code)
		}
		names[e.Name] = true
		codes[e.Code] = true
	}
	return &cat, nil
}

func (e entry) validate() error {
	if !namePattern.MatchString(e.Name) {
		return fmt.Errorf("invalid name %q", e.Name)
	}
	if !codePattern.MatchString(e.Code) {
		return fmt.Errorf("invalid code %q", e.Code)
	}
	if !phases[e.Phase] {
		return fmt.Errorf("unknown phase %q", e.Phase)
	}
	if _, ok := severityConsts[e.Severity]; !ok {
		return fmt.Errorf("unknown severity %q", e.Severity)
	}
	if e.Message == "" {
		return errors.New("missing message")
	}
	if len(e.Args) == 0 {
		return errors.New("at least one argument is required")
	}
	for _, a := range e.Args {
		if _, ok := fieldConsts[a.Field]; !ok {
			return fmt.Errorf("unknown argument field %q", a.Field)
		}
		if _, ok := argTypeConsts[a.Type]; !ok {
			return fmt.Errorf("unknown argument type %q", a.Type)
		}
	}
	for _, m := range placeholderPattern.FindAllStringSubmatch(e.Message, -1) {
		n, _ := strconv.Atoi(m[1])
		if n >= len(e.Args) {
			return fmt.Errorf("message references {%d} but has %d arguments", n, len(e.Args))
		}
	}
	return nil
}
