package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/Melvillian/navi/internal/model"
)

// JSONWriter outputs digests in JSON format for other tools.
type JSONWriter struct {
	baseWriter

	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonDigest is the JSON shape of a Digest.
type jsonDigest struct {
	Workspace   string             `json:"workspace"`
	Window      string             `json:"window"`
	Cutoff      time.Time          `json:"cutoff"`
	GeneratedAt time.Time          `json:"generated_at"`
	Roots       int                `json:"roots"`
	Truncated   int                `json:"truncated_pages"`
	Pages       []model.ParsedPage `json:"pages"`
}

// Write outputs the digest as one JSON document.
func (w *JSONWriter) Write(d *Digest) (int, error) {
	return w.writeJSON(toJSONDigest(d))
}

// WriteAll outputs one JSON document: the digest object when there is a
// single digest, otherwise an array of them.
func (w *JSONWriter) WriteAll(ds []*Digest) (int, error) {
	if len(ds) == 1 {
		return w.Write(ds[0])
	}

	out := make([]jsonDigest, 0, len(ds))
	for _, d := range ds {
		out = append(out, toJSONDigest(d))
	}
	return w.writeJSON(out)
}

func toJSONDigest(d *Digest) jsonDigest {
	pages := d.Pages
	if pages == nil {
		pages = []model.ParsedPage{}
	}

	return jsonDigest{
		Workspace:   d.Workspace,
		Window:      d.Window.String(),
		Cutoff:      d.Cutoff,
		GeneratedAt: d.GeneratedAt,
		Roots:       d.RootCount(),
		Truncated:   d.TruncatedCount(),
		Pages:       pages,
	}
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
