// Package router maps viewer request paths onto artifact content. The
// embedded viewer expects a real filesystem; the router synthesizes a
// stable directory-like namespace over the artifact store instead.
//
// Canonical suffix grammar:
//
//	schematic.drawio            the whole-schematic artifact
//	symbols/{lib}/{cell}.drawio one symbol artifact
//
// Any deployment prefix in front of the canonical suffix is ignored, so
// /embedded/symbols/a/b.drawio and /deploy/sub/embedded/symbols/a/b.drawio
// resolve to the same artifact.
package router

import (
	"strings"

	"github.com/cktlab/drawdeck/internal/artifact"
)

const (
	// Ext is the artifact file extension the viewer requests.
	Ext = ".drawio"
	// SchematicSuffix is the canonical suffix of the schematic artifact.
	SchematicSuffix = "schematic" + Ext
	// SymbolsDir is the directory segment that introduces symbol paths.
	SymbolsDir = "symbols"
)

// SymbolSuffix builds the canonical suffix for a symbol key.
func SymbolSuffix(key artifact.Key) string {
	return SymbolsDir + "/" + key.Lib + "/" + key.Cell + Ext
}

// Router resolves request paths against the live store. Resolution is
// pure: it recomputes from store contents on every call, so there is no
// cached table to go stale.
type Router struct {
	store *artifact.Store
}

// New creates a router over the given store.
func New(store *artifact.Store) *Router {
	return &Router{store: store}
}

// Resolve returns the live content for a request path, or
// artifact.ErrNotFound for unknown or malformed paths. There are no
// partial matches.
func (r *Router) Resolve(path string) ([]byte, error) {
	key, kind, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}
	if kind == artifact.KindSchematic {
		a, err := r.store.Schematic()
		if err != nil {
			return nil, err
		}
		return a.Content, nil
	}
	a, err := r.store.Symbol(key)
	if err != nil {
		return nil, err
	}
	return a.Content, nil
}

// Canonicalize strips any deployment prefix and identifies the entity a
// path names. The suffix match anchors on the last path segments so the
// prefix portion may vary per deployment.
func Canonicalize(path string) (artifact.Key, artifact.Kind, error) {
	segs := split(path)
	if len(segs) == 0 {
		return artifact.Key{}, "", artifact.ErrNotFound
	}
	last := segs[len(segs)-1]
	if last == SchematicSuffix {
		return artifact.Key{}, artifact.KindSchematic, nil
	}
	// symbols/{lib}/{cell}.drawio: need the three trailing segments.
	if len(segs) >= 3 && segs[len(segs)-3] == SymbolsDir && strings.HasSuffix(last, Ext) {
		cell := strings.TrimSuffix(last, Ext)
		lib := segs[len(segs)-2]
		if lib == "" || cell == "" {
			return artifact.Key{}, "", artifact.ErrNotFound
		}
		return artifact.Key{Lib: lib, Cell: cell}, artifact.KindSymbol, nil
	}
	return artifact.Key{}, "", artifact.ErrNotFound
}

func split(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// EntityID returns the canonical suffix used as the history and archive
// key for an artifact.
func EntityID(kind artifact.Kind, key artifact.Key) string {
	if kind == artifact.KindSchematic {
		return SchematicSuffix
	}
	return SymbolSuffix(key)
}
