// Package project packs the full working set (every artifact plus the
// style registry) into a single portable zip archive and restores an
// equivalent working set from one. Members are named by the router's
// canonical suffixes so a restored archive routes without translation.
package project

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/router"
	"github.com/cktlab/drawdeck/internal/style"
)

// Fixed member names inside the archive.
const (
	StyleMember    = "styles.json"
	ManifestMember = "project.json"
)

// FormatVersion is bumped on incompatible archive layout changes.
const FormatVersion = 1

// Archive restore errors. ErrMissingStyle and ErrMissingSchematic are
// partial failures: the returned Restored is still populated as far as
// the archive allows.
var (
	ErrCorruptArchive   = errors.New("archive cannot be opened")
	ErrMissingStyle     = errors.New("archive has no usable style member")
	ErrMissingSchematic = errors.New("archive has no schematic member")
)

// Manifest identifies an exported project.
type Manifest struct {
	ID            string    `json:"id"`
	FormatVersion int       `json:"format_version"`
	ExportedAt    time.Time `json:"exported_at"`
	Design        string    `json:"design,omitempty"`
}

// styleDoc is the styles.json member: the full registry, active preset
// first-class so minimal readers can ignore the rest.
type styleDoc struct {
	CurrentName string                   `json:"current_name"`
	Current     *style.Preset            `json:"current"`
	Presets     map[string]*style.Preset `json:"presets"`
}

// Restored is the outcome of a deserialize. Style is never nil: when
// the style member is missing or unparsable the default preset is
// substituted and ErrMissingStyle reported alongside.
type Restored struct {
	Manifest  Manifest
	Schematic []byte // nil when ErrMissingSchematic
	Symbols   map[artifact.Key][]byte
	Style     *style.Preset
	Presets   map[string]*style.Preset
}

// Serialize packs the store and style registry into archive bytes.
// History is deliberately not serialized; a restored project starts
// with fresh single-entry streams.
func Serialize(store *artifact.Store, styles *style.Registry, design string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	manifest := Manifest{
		ID:            uuid.New().String(),
		FormatVersion: FormatVersion,
		ExportedAt:    time.Now().UTC(),
		Design:        design,
	}
	if err := writeJSON(zw, ManifestMember, manifest); err != nil {
		return nil, err
	}

	doc := styleDoc{
		CurrentName: styles.CurrentName(),
		Current:     styles.Current(),
		Presets:     make(map[string]*style.Preset),
	}
	for _, name := range styles.Names() {
		p, err := styles.Preset(name)
		if err != nil {
			continue
		}
		doc.Presets[name] = p
	}
	if err := writeJSON(zw, StyleMember, doc); err != nil {
		return nil, err
	}

	if sch, err := store.Schematic(); err == nil {
		if err := writeMember(zw, router.SchematicSuffix, sch.Content); err != nil {
			return nil, err
		}
	}
	for _, key := range store.ListSymbols() {
		a, err := store.Symbol(key)
		if err != nil {
			continue
		}
		if err := writeMember(zw, router.SymbolSuffix(key), a.Content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize reconstructs a working set from archive bytes. A corrupt
// container fails outright; a missing style falls back to the default
// preset, and a missing schematic is reported but does not block symbol
// recovery. Partial failures are joined into the returned error while
// Restored stays usable.
func Deserialize(archiveBytes []byte) (*Restored, error) {
	zr, err := zip.NewReader(bytes.NewReader(archiveBytes), int64(len(archiveBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(in io.Reader) io.ReadCloser {
		return flate.NewReader(in)
	})

	res := &Restored{
		Symbols: make(map[artifact.Key][]byte),
		Presets: make(map[string]*style.Preset),
	}
	var styleSeen bool
	for _, f := range zr.File {
		content, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("%w: member %s: %v", ErrCorruptArchive, f.Name, err)
		}
		switch f.Name {
		case ManifestMember:
			// Manifest is informational; a bad one does not sink the restore.
			_ = json.Unmarshal(content, &res.Manifest)
			continue
		case StyleMember:
			styleSeen = decodeStyles(content, res)
			continue
		}
		key, kind, err := router.Canonicalize(f.Name)
		if err != nil {
			continue // foreign member, ignore
		}
		if kind == artifact.KindSchematic {
			res.Schematic = content
		} else {
			res.Symbols[key] = content
		}
	}

	var failures []error
	if !styleSeen {
		res.Style = style.Default()
		failures = append(failures, ErrMissingStyle)
	}
	if res.Schematic == nil {
		failures = append(failures, ErrMissingSchematic)
	}
	if len(failures) > 0 {
		return res, errors.Join(failures...)
	}
	return res, nil
}

// decodeStyles fills res from the styles member, reporting whether a
// usable active style was recovered.
func decodeStyles(content []byte, res *Restored) bool {
	var doc styleDoc
	if err := json.Unmarshal(content, &doc); err != nil || doc.Current == nil {
		return false
	}
	if doc.Current.Validate() != nil {
		return false
	}
	res.Style = doc.Current
	if res.Style.Name == "" {
		res.Style.Name = doc.CurrentName
	}
	for name, p := range doc.Presets {
		if p != nil && p.Validate() == nil {
			res.Presets[name] = p
		}
	}
	return true
}

func writeJSON(zw *zip.Writer, name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return writeMember(zw, name, data)
}

func writeMember(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create member %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("write member %s: %w", name, err)
	}
	return nil
}

func readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
