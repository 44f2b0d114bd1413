// Package engine is the stateful document engine: one instance owns the
// artifact store, the per-entity edit history, the style registry, the
// virtual router, and the archive codec, and keeps them consistent.
// It is created once per session and replaced wholesale only by ingest.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/history"
	"github.com/cktlab/drawdeck/internal/project"
	"github.com/cktlab/drawdeck/internal/render"
	"github.com/cktlab/drawdeck/internal/router"
	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

// Engine owns the full working set. Public operations are synchronous
// and serialized by one mutex; the HTTP layer may call from multiple
// goroutines but the engine stays a single logical writer.
type Engine struct {
	mu sync.Mutex

	store    *artifact.Store
	history  *history.Engine
	styles   *style.Registry
	router   *router.Router
	renderer render.Renderer

	// Last successfully ingested description; needed to re-render
	// artifacts when the style changes. Nil after an archive restore,
	// which carries no description.
	desc   *schematic.Schematic
	design string
}

// New creates an engine with empty state and the default style preset
// active.
func New(renderer render.Renderer, historyCap int) *Engine {
	store := artifact.NewStore()
	return &Engine{
		store:    store,
		history:  history.NewEngine(historyCap),
		styles:   style.NewRegistry(),
		router:   router.New(store),
		renderer: renderer,
	}
}

// IngestReport is the outcome of an ingest.
type IngestReport struct {
	SymbolKeys  []artifact.Key
	SchematicOK bool
	Warning     string
}

// IngestFromDescription renders a raw schematic description and
// replaces the full working set with the result. On any failure the
// prior state is untouched. The style registry survives re-ingest.
func (e *Engine) IngestFromDescription(ctx context.Context, raw []byte) (*IngestReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sch, err := schematic.Parse(raw)
	if err != nil {
		return nil, &render.Error{Reason: "cannot parse schematic description", Err: err}
	}
	preset := e.styles.Current()
	result, err := e.renderer.Render(ctx, sch, preset)
	if err != nil {
		return nil, err
	}

	e.replaceArtifacts(result.Schematic, result.Symbols)
	e.desc = sch
	e.design = sch.Design.Lib + "/" + sch.Design.Cell

	report := &IngestReport{SymbolKeys: e.store.ListSymbols(), SchematicOK: true}
	slog.Info("ingested schematic description",
		"design", e.design, "symbols", len(report.SymbolKeys))
	return report, nil
}

// IngestFromArchive restores a working set from an exported archive.
// Content is already rendered, so the renderer is bypassed. A missing
// style falls back to the default preset; a missing schematic still
// restores the symbols but is reported to the caller.
func (e *Engine) IngestFromArchive(archiveBytes []byte) (*IngestReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	restored, err := project.Deserialize(archiveBytes)
	if err != nil && errors.Is(err, project.ErrCorruptArchive) {
		return nil, err
	}

	e.replaceArtifacts(restored.Schematic, restored.Symbols)
	e.desc = nil
	e.design = restored.Manifest.Design

	for name, p := range restored.Presets {
		e.styles.AddPreset(name, p)
	}
	e.styles.Replace(restored.Style)

	report := &IngestReport{
		SymbolKeys:  e.store.ListSymbols(),
		SchematicOK: restored.Schematic != nil,
	}
	if err != nil {
		report.Warning = err.Error()
	}
	slog.Info("restored project archive",
		"id", restored.Manifest.ID, "symbols", len(report.SymbolKeys),
		"schematic_ok", report.SchematicOK)
	return report, nil
}

// replaceArtifacts swaps the store contents and reseeds every history
// stream with entry zero. Full-state replacement, never a merge.
func (e *Engine) replaceArtifacts(schematicDoc []byte, symbols map[artifact.Key][]byte) {
	e.store.ReplaceAll(schematicDoc, symbols)
	e.history.Clear()
	if schematicDoc != nil {
		e.history.Seed(router.SchematicSuffix, schematicDoc)
	}
	for key, content := range symbols {
		e.history.Seed(router.SymbolSuffix(key), content)
	}
}

// Resolve serves artifact content for a viewer request path.
func (e *Engine) Resolve(path string) ([]byte, error) {
	return e.router.Resolve(path)
}

// ListSymbols returns the symbol keys of the working set.
func (e *Engine) ListSymbols() []artifact.Key {
	return e.store.ListSymbols()
}

// HasSchematic reports whether a schematic artifact is loaded.
func (e *Engine) HasSchematic() bool {
	return e.store.HasSchematic()
}

// CommitEdit applies edited content delivered by the viewer: store put
// and history push as one logical commit. The entity must already
// exist; edits never create artifacts.
func (e *Engine) CommitEdit(entity string, content []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, kind, err := router.Canonicalize(entity)
	if err != nil {
		return err
	}
	if kind == artifact.KindSchematic {
		if !e.store.HasSchematic() {
			return artifact.ErrNotFound
		}
		e.store.PutSchematic(content)
	} else {
		if _, err := e.store.Symbol(key); err != nil {
			return err
		}
		e.store.PutSymbol(key, content)
	}
	// History push comes second: if the content write had failed we
	// must not advance history, while a failed push would still leave
	// the content committed (history is best-effort).
	e.history.Push(router.EntityID(kind, key), content)
	return nil
}

// Undo steps the entity's history back and writes the surfaced
// snapshot into the store. Returns the restored content.
func (e *Engine) Undo(entity string) ([]byte, history.Info, error) {
	return e.step(entity, e.history.Undo)
}

// Redo steps the entity's history forward, writing the snapshot back.
func (e *Engine) Redo(entity string) ([]byte, history.Info, error) {
	return e.step(entity, e.history.Redo)
}

func (e *Engine) step(entity string, move func(string) ([]byte, error)) ([]byte, history.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, kind, err := router.Canonicalize(entity)
	if err != nil {
		return nil, history.Info{}, err
	}
	id := router.EntityID(kind, key)
	content, err := move(id)
	if err != nil {
		return nil, history.Info{}, err
	}
	if kind == artifact.KindSchematic {
		e.store.PutSchematic(content)
	} else {
		e.store.PutSymbol(key, content)
	}
	info, _ := e.history.Info(id)
	return content, info, nil
}

// HistoryInfo reports the entity's stream state.
func (e *Engine) HistoryInfo(entity string) (history.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key, kind, err := router.Canonicalize(entity)
	if err != nil {
		return history.Info{}, err
	}
	return e.history.Info(router.EntityID(kind, key))
}

// ExportArchive packs the working set into a portable archive.
func (e *Engine) ExportArchive() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return project.Serialize(e.store, e.styles, e.design)
}

// Design names the loaded schematic, empty when nothing is loaded.
func (e *Engine) Design() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.design
}

// applyStyle propagates a style change to the live artifacts. A
// visibility-only change is patched into the existing documents in
// place, preserving committed edits (and working even after an archive
// restore, where no description is retained); anything else forces a
// full re-render.
func (e *Engine) applyStyle(ctx context.Context, diff style.Diff) error {
	if !diff.Changed {
		return nil
	}
	if diff.OnlyVisibility {
		e.patchVisibility()
		return nil
	}
	return e.rerender(ctx)
}

// patchVisibility rewrites layer visibility in every stored artifact
// without touching history: the documents keep their content, only the
// layer cells' visible attributes change.
func (e *Engine) patchVisibility() {
	preset := e.styles.Current()
	if sch, err := e.store.Schematic(); err == nil {
		e.store.PutSchematic(render.PatchVisibility(sch.Content, preset))
	}
	for _, key := range e.store.ListSymbols() {
		if a, err := e.store.Symbol(key); err == nil {
			e.store.PutSymbol(key, render.PatchVisibility(a.Content, preset))
		}
	}
}

// rerender regenerates every artifact from the retained description
// with the current style, pushing the regenerated content as history
// entries so the style change is undoable per entity. Without a
// description (archive restore) there is nothing to re-render.
func (e *Engine) rerender(ctx context.Context) error {
	if e.desc == nil {
		return nil
	}
	result, err := e.renderer.Render(ctx, e.desc, e.styles.Current())
	if err != nil {
		return fmt.Errorf("re-render after style change: %w", err)
	}
	if result.Schematic != nil {
		e.store.PutSchematic(result.Schematic)
		e.history.Push(router.SchematicSuffix, result.Schematic)
	}
	for key, content := range result.Symbols {
		e.store.PutSymbol(key, content)
		e.history.Push(router.SymbolSuffix(key), content)
	}
	return nil
}
