// Package clipboard delivers picked characters to wherever text is inserted.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the system clipboard cannot be used.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Inserter inserts text at the host's insertion point.
type Inserter interface {
	Insert(text string) error
}

// Clipboard copies inserted text to the system clipboard.
type Clipboard struct{}

var _ Inserter = Clipboard{}

// Insert writes text to the clipboard.
func (Clipboard) Insert(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Available reports whether the platform has a usable clipboard.
func (Clipboard) Available() bool {
	return !clipboard.Unsupported
}

// Writer inserts text by writing it to an io.Writer, such as stdout.
type Writer struct {
	W       io.Writer
	Newline bool
}

var _ Inserter = (*Writer)(nil)

func (w *Writer) Insert(text string) error {
	if w.Newline {
		text += "\n"
	}
	if _, err := io.WriteString(w.W, text); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}

// Recorder keeps every inserted text in memory.
type Recorder struct {
	Inserted []string
}

var _ Inserter = (*Recorder)(nil)

func (r *Recorder) Insert(text string) error {
	r.Inserted = append(r.Inserted, text)
	return nil
}

// New picks the clipboard when available and falls back to w otherwise.
func New(w io.Writer, preferStdout bool) Inserter {
	if preferStdout || clipboard.Unsupported {
		return &Writer{W: w, Newline: true}
	}
	return Clipboard{}
}
