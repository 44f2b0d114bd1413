// Package history tracks a bounded, indexable edit history per entity:
// one stream for the schematic, one per symbol. Each stream is an arena
// of content snapshots plus a cursor; undo and redo just move the
// cursor, and a push after an undo prunes the redo branch.
package history

import "errors"

// Common errors for history operations. ErrNotFound means no stream
// exists for the key at all; ErrNoHistory means the stream exists but
// the cursor is at a boundary. Callers must not treat these the same.
var (
	ErrNotFound  = errors.New("no history stream for entity")
	ErrNoHistory = errors.New("nothing to undo or redo")
)

// DefaultCap bounds each stream when no explicit cap is configured.
const DefaultCap = 50

// Info is a pure snapshot of one stream's state.
type Info struct {
	CurrentIndex int  `json:"current_index"`
	Len          int  `json:"len"`
	CanUndo      bool `json:"can_undo"`
	CanRedo      bool `json:"can_redo"`
}

type stream struct {
	snapshots [][]byte
	cursor    int
}

// Engine owns every entity's stream. Entities are addressed by their
// canonical suffix so the same key works for routing, history, and
// archive members.
type Engine struct {
	streams map[string]*stream
	cap     int
}

// NewEngine creates an engine whose streams hold at most cap snapshots.
func NewEngine(cap int) *Engine {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Engine{
		streams: make(map[string]*stream),
		cap:     cap,
	}
}

// Seed resets the entity's stream to a single entry holding content.
// Used at ingest and archive restore; any prior stream is discarded.
func (e *Engine) Seed(key string, content []byte) {
	e.streams[key] = &stream{
		snapshots: [][]byte{clone(content)},
		cursor:    0,
	}
}

// Clear drops every stream.
func (e *Engine) Clear() {
	e.streams = make(map[string]*stream)
}

// Push appends a snapshot to the entity's stream. If the cursor is not
// at the tip (the user had undone), everything past the cursor is
// discarded first; there is no branching history. When the stream
// exceeds the cap the oldest entry is dropped and the cursor rebased so
// it still names the same logical snapshot. An unknown key starts a
// fresh stream.
func (e *Engine) Push(key string, content []byte) {
	st, ok := e.streams[key]
	if !ok {
		e.Seed(key, content)
		return
	}
	st.snapshots = append(st.snapshots[:st.cursor+1], clone(content))
	st.cursor = len(st.snapshots) - 1
	if len(st.snapshots) > e.cap {
		excess := len(st.snapshots) - e.cap
		st.snapshots = st.snapshots[excess:]
		st.cursor -= excess
	}
}

// Undo moves the cursor back one step and returns the snapshot now
// under it. The caller writes it back into the artifact store.
func (e *Engine) Undo(key string) ([]byte, error) {
	st, ok := e.streams[key]
	if !ok {
		return nil, ErrNotFound
	}
	if st.cursor == 0 {
		return nil, ErrNoHistory
	}
	st.cursor--
	return clone(st.snapshots[st.cursor]), nil
}

// Redo moves the cursor forward one step and returns that snapshot.
func (e *Engine) Redo(key string) ([]byte, error) {
	st, ok := e.streams[key]
	if !ok {
		return nil, ErrNotFound
	}
	if st.cursor == len(st.snapshots)-1 {
		return nil, ErrNoHistory
	}
	st.cursor++
	return clone(st.snapshots[st.cursor]), nil
}

// Info reports the stream state for one entity.
func (e *Engine) Info(key string) (Info, error) {
	st, ok := e.streams[key]
	if !ok {
		return Info{}, ErrNotFound
	}
	return Info{
		CurrentIndex: st.cursor,
		Len:          len(st.snapshots),
		CanUndo:      st.cursor > 0,
		CanRedo:      st.cursor < len(st.snapshots)-1,
	}, nil
}

// Cap returns the configured per-stream bound.
func (e *Engine) Cap() int { return e.cap }

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
