package report

import (
	"io"
)

// Writer writes a digest in one output format.
type Writer interface {
	// Write outputs the digest and returns the number of bytes written.
	Write(d *Digest) (int, error)
}

// BatchWriter is implemented by Writers whose output format needs every
// digest of a run at once.
type BatchWriter interface {
	WriteAll(ds []*Digest) (int, error)
}

// WriteAll writes all digests to w, as one batch when w is a BatchWriter and
// one by one otherwise.
func WriteAll(w Writer, ds []*Digest) (int, error) {
	if bw, ok := w.(BatchWriter); ok {
		return bw.WriteAll(ds)
	}

	var total int
	for _, d := range ds {
		n, err := w.Write(d)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// MultiWriter writes to multiple Writers in order and stops at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the digest to all configured Writers.
func (m *MultiWriter) Write(d *Digest) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(d)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAll outputs all digests to every configured Writer.
func (m *MultiWriter) WriteAll(ds []*Digest) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := WriteAll(w, ds)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// PromptWriter writes the prompt text of a digest followed by a newline.
type PromptWriter struct {
	baseWriter
}

// NewPromptWriter creates a PromptWriter that outputs to the given writer.
func NewPromptWriter(output io.Writer) *PromptWriter {
	return &PromptWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the prompt text.
func (w *PromptWriter) Write(d *Digest) (int, error) {
	text := d.PromptText()
	if text == "" {
		return 0, nil
	}
	return io.WriteString(w.output, text+"\n")
}
