// Package demo serves the read-only demo sets bundled with the system:
// named pairs of schematic description plus optional style preset,
// loadable without any upload. Sets live on disk under
// root/{name}/schematic.json (+ style.yaml), added by dropping files
// into the directory.
package demo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned for an unknown demo name.
var ErrNotFound = errors.New("demo set not found")

const (
	descriptionFile = "schematic.json"
	styleFile       = "style.yaml"
)

// Entry describes one demo set for listings. Design is probed from the
// description without a full parse.
type Entry struct {
	Name     string `json:"name"`
	Design   string `json:"design"`
	HasStyle bool   `json:"has_style"`
}

// Set is a loaded demo: the raw description plus the raw style payload
// (nil when the set ships without one).
type Set struct {
	Name        string
	Description []byte
	Style       []byte
}

// Library reads demo sets from a directory tree.
type Library struct {
	rootDir string
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(rootDir string) *Library {
	return &Library{rootDir: rootDir}
}

// List enumerates the available demo sets, sorted by name. A directory
// without a description file is skipped.
func (l *Library) List() ([]Entry, error) {
	entries, err := os.ReadDir(l.rootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read demo dir: %w", err)
	}
	var out []Entry
	for _, dirEnt := range entries {
		if !dirEnt.IsDir() {
			continue
		}
		name := dirEnt.Name()
		desc, err := os.ReadFile(filepath.Join(l.rootDir, name, descriptionFile))
		if err != nil {
			continue
		}
		design := gjson.GetBytes(desc, "design.lib").String() + "/" +
			gjson.GetBytes(desc, "design.cell").String()
		_, styleErr := os.Stat(filepath.Join(l.rootDir, name, styleFile))
		out = append(out, Entry{
			Name:     name,
			Design:   design,
			HasStyle: styleErr == nil,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load reads one demo set.
func (l *Library) Load(name string) (*Set, error) {
	desc, err := os.ReadFile(filepath.Join(l.rootDir, name, descriptionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read demo %s: %w", name, err)
	}
	set := &Set{Name: name, Description: desc}
	if styleRaw, err := os.ReadFile(filepath.Join(l.rootDir, name, styleFile)); err == nil {
		set.Style = styleRaw
	}
	return set, nil
}
