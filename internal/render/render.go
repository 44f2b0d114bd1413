// Package render converts a schematic description into draw.io diagram
// artifacts: one document per referenced symbol plus one for the whole
// schematic. The engine depends only on the Renderer interface; the
// built-in implementation transcribes the description's pre-placed
// coordinates, it performs no layout of its own.
package render

import (
	"context"
	"fmt"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

// Result is the full set of artifacts produced by one render pass.
type Result struct {
	Schematic []byte
	Symbols   map[artifact.Key][]byte
}

// Renderer converts a schematic description under a style preset.
// Implementations must be pure: same inputs, same outputs, no retained
// state.
type Renderer interface {
	Render(ctx context.Context, sch *schematic.Schematic, preset *style.Preset) (*Result, error)
}

// Error reports a rejected schematic description or style.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render failed: %s: %v", e.Reason, e.Err)
	}
	return "render failed: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

func renderErrorf(err error, format string, args ...interface{}) *Error {
	return &Error{Reason: fmt.Sprintf(format, args...), Err: err}
}
