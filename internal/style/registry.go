package style

// Registry owns the named presets plus the live editing state: the
// active preset name, the live (possibly edited) copy, and the fixed
// snapshot taken at the last explicit save. fixed is always a prior
// value of current; drift exists iff current != fixed.
type Registry struct {
	presets     map[string]*Preset
	currentName string
	current     *Preset
	fixed       *Preset
}

// NewRegistry creates a registry seeded with the built-in default
// preset, which is also the active one.
func NewRegistry() *Registry {
	def := Default()
	return &Registry{
		presets:     map[string]*Preset{def.Name: def},
		currentName: def.Name,
		current:     def.Clone(),
		fixed:       def.Clone(),
	}
}

// AddPreset inserts or overwrites a named preset. Overwriting is
// intentional: re-uploading a style under the same name replaces it.
func (r *Registry) AddPreset(name string, p *Preset) {
	cp := p.Clone()
	cp.Name = name
	r.presets[name] = cp
}

// Preset returns the stored definition for name.
func (r *Registry) Preset(name string) (*Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// Names lists the registered preset names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	return names
}

// SetCurrent activates a named preset. Switching is itself a save
// point: both current and fixed become copies of the preset, so no
// drift exists against the just-selected preset.
func (r *Registry) SetCurrent(name string) (*Preset, error) {
	p, ok := r.presets[name]
	if !ok {
		return nil, ErrNotFound
	}
	r.currentName = name
	r.current = p.Clone()
	r.fixed = p.Clone()
	return p.Clone(), nil
}

// CurrentName returns the active preset name.
func (r *Registry) CurrentName() string { return r.currentName }

// Current returns a copy of the live style.
func (r *Registry) Current() *Preset { return r.current.Clone() }

// Fixed returns a copy of the last explicitly saved style.
func (r *Registry) Fixed() *Preset { return r.fixed.Clone() }

// UpdateCurrent applies a live edit without committing it; fixed is
// untouched so the drift remains computable.
func (r *Registry) UpdateCurrent(p *Preset) {
	cp := p.Clone()
	cp.Name = r.currentName
	r.current = cp
}

// FixCurrent commits the live style: fixed becomes a copy of current,
// and the stored preset under the active name is updated to match so a
// later SetCurrent round-trips to the saved value.
func (r *Registry) FixCurrent() {
	r.fixed = r.current.Clone()
	if _, ok := r.presets[r.currentName]; ok {
		r.presets[r.currentName] = r.current.Clone()
	}
}

// ResetCurrentToFixed discards live drift, restoring current from
// fixed, and returns the restored style.
func (r *Registry) ResetCurrentToFixed() *Preset {
	r.current = r.fixed.Clone()
	return r.current.Clone()
}

// Drift compares the live style against the fixed snapshot.
func (r *Registry) Drift() Diff {
	return Compare(r.current, r.fixed)
}

// Replace swaps in restored state wholesale: the given preset becomes a
// registered preset, the active style, and the fixed snapshot. Used by
// archive restore.
func (r *Registry) Replace(p *Preset) {
	name := p.Name
	if name == "" {
		name = DefaultName
	}
	cp := p.Clone()
	cp.Name = name
	r.presets[name] = cp
	r.currentName = name
	r.current = cp.Clone()
	r.fixed = cp.Clone()
}
