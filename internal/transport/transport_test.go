package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jsscope/jsscope/internal/testutil"
	"github.com/jsscope/jsscope/js"
)

func TestWriteFraming(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	testutil.NoError(t, w.Write(Request{Path: "a.js"}))
	testutil.Equal(t, "Content-Length: 15\r\n\r\n{\"path\":\"a.js\"}", buf.String())
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	resp := Response{
		ID:      7,
		Path:    "src/app.js",
		Outcome: js.OutcomeRecovered.String(),
		Diagnostics: []js.FileDiagnostic{{
			Severity: js.SeverityError,
			Code:     "missing-operand-for-operator",
			Message:  "missing operand for operator",
			File:     "src/app.js",
			Line:     1,
			Column:   3,
			Start:    2,
			End:      3,
		}},
		Events: []js.Event{
			{Kind: js.EventEnterModule},
			{Kind: js.EventVariableDeclaration, Name: "x", Span: js.Span{Start: 4, End: 5}, VarKind: js.VariableKindLet},
		},
	}
	testutil.NoError(t, w.Write(resp))
	testutil.NoError(t, w.Write(Request{ID: 8, Text: "x;"}))

	r := NewReader(&buf)
	var got Response
	testutil.NoError(t, r.Read(&got))
	testutil.Equal(t, resp.ID, got.ID)
	testutil.Equal(t, resp.Outcome, got.Outcome)
	testutil.SliceEqual(t, resp.Diagnostics, got.Diagnostics)
	testutil.SliceEqual(t, resp.Events, got.Events)

	var req Request
	testutil.NoError(t, r.Read(&req))
	testutil.Equal(t, Request{ID: 8, Text: "x;"}, req)

	_, err := r.ReadRaw()
	testutil.True(t, errors.Is(err, io.EOF), "clean end of input")
}

func TestReadHeaders(t *testing.T) {
	input := "Content-Type: application/json\r\ncontent-length: 2\r\n\r\n{}"
	data, err := NewReader(strings.NewReader(input)).ReadRaw()
	testutil.NoError(t, err)
	testutil.Equal(t, "{}", string(data))
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"no length", "Content-Type: x\r\n\r\n{}", ErrMissingLength},
		{"bad length", "Content-Length: ten\r\n\r\n{}", ErrMissingLength},
		{"too large", fmt.Sprintf("Content-Length: %d\r\n\r\n", MaxMessageSize+1), ErrMessageTooLarge},
		{"short body", "Content-Length: 10\r\n\r\n{}", io.ErrUnexpectedEOF},
		{"truncated header", "Content-Length: 2", io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input)).ReadRaw()
			testutil.Error(t, err)
			testutil.True(t, errors.Is(err, tt.is), "got %v, want %v", err, tt.is)
		})
	}

	_, err := NewReader(strings.NewReader("garbage\r\n\r\n")).ReadRaw()
	testutil.Error(t, err, "header without colon")

	var v Request
	err = NewReader(strings.NewReader("Content-Length: 3\r\n\r\n{{{")).Read(&v)
	testutil.Error(t, err, "invalid JSON")
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Write(Request{ID: i + 1, Path: strings.Repeat("p", i)})
		}()
	}
	wg.Wait()

	r := NewReader(&buf)
	seen := make(map[int]bool)
	for range n {
		var req Request
		testutil.NoError(t, r.Read(&req))
		testutil.Equal(t, req.ID-1, len(req.Path), "frame %d intact", req.ID)
		seen[req.ID] = true
	}
	testutil.Equal(t, n, len(seen))
}
