package engine

import (
	"context"

	"github.com/cktlab/drawdeck/internal/style"
)

// StyleNames lists the registered preset names.
func (e *Engine) StyleNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles.Names()
}

// CurrentStyle returns the live style and its preset name.
func (e *Engine) CurrentStyle() (string, *style.Preset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles.CurrentName(), e.styles.Current()
}

// StyleDrift compares the live style against the last saved snapshot.
func (e *Engine) StyleDrift() style.Diff {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles.Drift()
}

// AddStyle registers an uploaded preset under a name, replacing any
// existing preset of that name.
func (e *Engine) AddStyle(name string, raw []byte) (*style.Preset, error) {
	p, err := style.ParsePreset(raw)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles.AddPreset(name, p)
	return p, nil
}

// SelectStyle activates a named preset. Switching is a save point (no
// drift remains), and the working set is re-rendered when the preset
// differs from the previous style by more than visibility.
func (e *Engine) SelectStyle(ctx context.Context, name string) (*style.Preset, style.Diff, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.styles.Current()
	p, err := e.styles.SetCurrent(name)
	if err != nil {
		return nil, style.Diff{}, err
	}
	diff := style.Compare(prev, p)
	if err := e.applyStyle(ctx, diff); err != nil {
		return nil, diff, err
	}
	return p, diff, nil
}

// UpdateStyle applies a live style edit without committing it. The
// returned diff is against the previous live style and classifies the
// change for the caller: attribute drift or visibility-only.
func (e *Engine) UpdateStyle(ctx context.Context, raw []byte) (style.Diff, error) {
	p, err := style.ParsePreset(raw)
	if err != nil {
		return style.Diff{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	diff := style.Compare(e.styles.Current(), p)
	e.styles.UpdateCurrent(p)
	if err := e.applyStyle(ctx, diff); err != nil {
		return diff, err
	}
	return diff, nil
}

// FixStyle commits the live style as the new saved snapshot and
// updates the stored preset definition to match.
func (e *Engine) FixStyle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles.FixCurrent()
}

// ResetStyle discards live drift, restoring the last saved style, and
// re-renders if the discarded drift was more than visibility.
func (e *Engine) ResetStyle(ctx context.Context) (*style.Preset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	diff := e.styles.Drift()
	p := e.styles.ResetCurrentToFixed()
	if err := e.applyStyle(ctx, diff); err != nil {
		return nil, err
	}
	return p, nil
}
