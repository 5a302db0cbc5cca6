package js

import "github.com/jsscope/jsscope/internal/types"

// ByteOffset is a 0-based byte position in a source buffer.
type ByteOffset = types.ByteOffset

// Span is a half-open [Start, End) byte range in a source buffer.
type Span = types.Span

// Identifier is a name as it appears in source.
type Identifier struct {
	Name string
	Span Span
}

func (id Identifier) String() string {
	return id.Name
}
