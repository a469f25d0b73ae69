package parser

import (
	"fmt"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// Dispatcher holds at most one concrete parser, chosen once the language of
// the stream is known. Exactly one of cj and py is set after Bind.
type Dispatcher struct {
	streams  StreamNames
	language lang.Language
	cj       *CJParser
	py       *PyParser
}

// NewDispatcher creates an unbound dispatcher.
func NewDispatcher(streams StreamNames) *Dispatcher {
	return &Dispatcher{streams: streams}
}

// Bind selects the parser for language. Binding is terminal: a second call
// fails with ErrAlreadyBound and leaves the dispatcher unchanged.
func (d *Dispatcher) Bind(source string, language lang.Language) error {
	if d.Bound() {
		return fmt.Errorf("bind %s: %w", language, internalerr.ErrAlreadyBound)
	}
	switch language {
	case lang.C, lang.Cpp, lang.Java:
		d.cj = NewCJParser(source, d.streams)
	case lang.Python:
		d.py = NewPyParser(source)
	default:
		return fmt.Errorf("bind %s: %w", language, internalerr.ErrInvalidInput)
	}
	d.language = language
	return nil
}

// Bound reports whether a parser has been selected.
func (d *Dispatcher) Bound() bool { return d.cj != nil || d.py != nil }

// Language returns the bound language, or lang.Unknown.
func (d *Dispatcher) Language() lang.Language { return d.language }

// Parse forwards text to the bound parser and returns the number of new
// components. While unbound the fragment is dropped and ok is false.
func (d *Dispatcher) Parse(text string, offset int) (added int, ok bool) {
	switch {
	case d.cj != nil:
		return d.cj.Parse(text, offset), true
	case d.py != nil:
		return d.py.Parse(text, offset), true
	}
	return 0, false
}

// Snapshot returns a copy of the bound parser's registry. An unbound
// dispatcher yields an empty registry.
func (d *Dispatcher) Snapshot() *taxonomy.Registry {
	switch {
	case d.cj != nil:
		return d.cj.Snapshot()
	case d.py != nil:
		return d.py.Snapshot()
	}
	return taxonomy.NewRegistry()
}
