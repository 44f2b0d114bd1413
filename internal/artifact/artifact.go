// Package artifact owns the rendered diagram documents: one per symbol
// plus the single whole-schematic diagram. The store is the single
// source of truth for live content; history and styling layer on top.
package artifact

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no artifact exists for a key.
var ErrNotFound = errors.New("artifact not found")

// Kind distinguishes the singleton schematic artifact from symbol
// artifacts.
type Kind string

const (
	KindSymbol    Kind = "symbol"
	KindSchematic Kind = "schematic"
)

// Key identifies a symbol artifact by library and cell. The schematic
// artifact has no key; it is addressed by kind.
type Key struct {
	Lib  string
	Cell string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Lib, k.Cell)
}

// Artifact is one rendered diagram document.
type Artifact struct {
	Kind    Kind
	Key     Key    // zero value for the schematic
	Content []byte
}

// Copy returns an artifact with an independent content buffer.
func (a *Artifact) Copy() *Artifact {
	cp := *a
	cp.Content = append([]byte(nil), a.Content...)
	return &cp
}
