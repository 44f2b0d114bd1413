package artifact

import "sync"

// Store is the in-memory artifact store. The engine is single-writer,
// but route resolution may be driven from HTTP handler goroutines, so
// reads and the wholesale replace are guarded by a RWMutex to keep
// ReplaceAll atomic with respect to concurrent resolution.
type Store struct {
	mu        sync.RWMutex
	symbols   map[Key]*Artifact
	schematic *Artifact
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{symbols: make(map[Key]*Artifact)}
}

// Symbol returns the artifact for a symbol key.
func (s *Store) Symbol(key Key) (*Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.symbols[key]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Copy(), nil
}

// Schematic returns the whole-schematic artifact.
func (s *Store) Schematic() (*Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.schematic == nil {
		return nil, ErrNotFound
	}
	return s.schematic.Copy(), nil
}

// PutSymbol replaces the live content for a symbol. History is the
// caller's concern: commits that want undo support pair this with a
// history push.
func (s *Store) PutSymbol(key Key, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols[key] = &Artifact{
		Kind:    KindSymbol,
		Key:     key,
		Content: append([]byte(nil), content...),
	}
}

// PutSchematic replaces the live schematic content.
func (s *Store) PutSchematic(content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schematic = &Artifact{
		Kind:    KindSchematic,
		Content: append([]byte(nil), content...),
	}
}

// ListSymbols returns the symbol keys currently present. Order is
// unspecified.
func (s *Store) ListSymbols() []Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]Key, 0, len(s.symbols))
	for k := range s.symbols {
		keys = append(keys, k)
	}
	return keys
}

// HasSchematic reports whether a schematic artifact exists.
func (s *Store) HasSchematic() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schematic != nil
}

// ClearAll drops every artifact.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = make(map[Key]*Artifact)
	s.schematic = nil
}

// ReplaceAll atomically swaps the full working set. Either the old
// state or the new state is visible to readers, never a mix; this is
// what makes ingest a full-state replacement rather than a merge.
func (s *Store) ReplaceAll(schematic []byte, symbols map[Key][]byte) {
	next := make(map[Key]*Artifact, len(symbols))
	for k, content := range symbols {
		next[k] = &Artifact{
			Kind:    KindSymbol,
			Key:     k,
			Content: append([]byte(nil), content...),
		}
	}
	var sch *Artifact
	if schematic != nil {
		sch = &Artifact{Kind: KindSchematic, Content: append([]byte(nil), schematic...)}
	}
	s.mu.Lock()
	s.symbols = next
	s.schematic = sch
	s.mu.Unlock()
}
