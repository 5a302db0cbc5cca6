// Package transport reads and writes JSON messages framed with a
// Content-Length header, as used by language server style tools:
//
//	Content-Length: 42\r\n
//	\r\n
//	{"path":"src/app.js", ...}
package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/jsscope/jsscope/js"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MaxMessageSize bounds the Content-Length a Reader accepts.
const MaxMessageSize = 64 << 20

var (
	// ErrMissingLength is returned for a header block without a usable
	// Content-Length.
	ErrMissingLength = errors.New("missing Content-Length header")
	// ErrMessageTooLarge is returned when Content-Length exceeds
	// MaxMessageSize.
	ErrMessageTooLarge = errors.New("message too large")
)

// Request asks for one buffer to be linted. Exactly one of Path and Text
// should be set; Name labels diagnostics for Text requests.
type Request struct {
	ID   int    `json:"id,omitempty"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
	Name string `json:"name,omitempty"`
	// Events asks for the visitor event stream in the response.
	Events bool `json:"events,omitempty"`
}

// Response carries the result of one Request.
type Response struct {
	ID          int                 `json:"id,omitempty"`
	Path        string              `json:"path,omitempty"`
	Outcome     string              `json:"outcome,omitempty"`
	Diagnostics []js.FileDiagnostic `json:"diagnostics"`
	Events      []js.Event          `json:"events,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Writer writes framed messages. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter returns a Writer framing messages onto w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// WriteRaw writes data as one message body.
func (w *Writer) WriteRaw(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := fmt.Fprintf(w.out, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	_, err := w.out.Write(data)
	return err
}

// Write encodes v as JSON and writes it as one message.
func (w *Writer) Write(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}
	return w.WriteRaw(data)
}

// Reader reads framed messages.
type Reader struct {
	in *bufio.Reader
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{in: bufio.NewReader(r)}
}

// ReadRaw reads the next message body. It returns io.EOF when the input
// ends cleanly between messages.
func (r *Reader) ReadRaw() ([]byte, error) {
	length := -1
	first := true
	for {
		line, err := r.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && first && line == "" {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("reading header: %w", err)
		}
		first = false
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header line %q", line)
		}
		// The last Content-Length wins; other headers are ignored.
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid Content-Length %q: %w", value, ErrMissingLength)
			}
			length = n
		}
	}
	if length < 0 {
		return nil, ErrMissingLength
	}
	if length > MaxMessageSize {
		return nil, fmt.Errorf("%d bytes: %w", length, ErrMessageTooLarge)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r.in, data); err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}

// Read reads the next message and decodes it into v.
func (r *Reader) Read(v any) error {
	data, err := r.ReadRaw()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding message: %w", err)
	}
	return nil
}
