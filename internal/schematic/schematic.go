package schematic

import (
	"encoding/json"
	"fmt"
)

// Layer identifies one of the six logical drawing layers of a schematic.
type Layer string

const (
	LayerInstance Layer = "instance"
	LayerAnnotate Layer = "annotate"
	LayerPin      Layer = "pin"
	LayerDevice   Layer = "device"
	LayerWire     Layer = "wire"
	LayerText     Layer = "text"
)

// Layers lists every valid layer. Order here is not the display order;
// display order comes from the style preset.
var Layers = []Layer{LayerInstance, LayerAnnotate, LayerPin, LayerDevice, LayerWire, LayerText}

// ParseLayer validates a layer name.
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerInstance, LayerAnnotate, LayerPin, LayerDevice, LayerWire, LayerText:
		return Layer(s), nil
	}
	return "", fmt.Errorf("unknown layer: %s", s)
}

func (l Layer) String() string { return string(l) }

// ID returns the diagram cell ID for this layer.
func (l Layer) ID() string { return "layer-" + string(l) }

// UnmarshalJSON rejects unknown layer names at parse time.
func (l *Layer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLayer(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Point is an (x, y) coordinate in schematic units.
type Point [2]float64

// Design names the schematic itself as a library/cell pair.
type Design struct {
	Lib  string `json:"lib"`
	Cell string `json:"cell"`
}

// Instance is a placed occurrence of a symbol.
type Instance struct {
	Name   string  `json:"name"`
	Lib    string  `json:"lib"`
	Cell   string  `json:"cell"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Orient string  `json:"orient"`
}

// Wire is a polyline segment belonging to a net. Nets may be split
// across multiple wires; the renderer merges chains per net.
type Wire struct {
	Net    string  `json:"net"`
	Points []Point `json:"points"`
}

// Pin is a top-level connection point of the schematic.
type Pin struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// TemplatePin is a connection point declared on a symbol template.
type TemplatePin struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Symbol is a reusable cell definition referenced by instances.
type Symbol struct {
	Lib    string        `json:"lib"`
	Cell   string        `json:"cell"`
	Shapes []Shape       `json:"shapes"`
	Pins   []TemplatePin `json:"pins"`
}

// ObjectID builds the cell ID for the idx-th object of a symbol layer:
// {lib}/{cell}-{layer}-{idx}.
func (s *Symbol) ObjectID(layer Layer, idx int) string {
	return fmt.Sprintf("%s/%s-%s-%d", s.Lib, s.Cell, layer, idx)
}

// Schematic is the full description a renderer consumes. Coordinates are
// already placed; rendering is transcription, not layout.
type Schematic struct {
	Design    Design     `json:"design"`
	Instances []Instance `json:"instances"`
	Wires     []Wire     `json:"wires"`
	Pins      []Pin      `json:"pins"`
	Symbols   []Symbol   `json:"symbols"`
	Labels    []Shape    `json:"labels"`
	Shapes    []Shape    `json:"shapes"`
}

// Parse decodes a raw schematic description.
func Parse(raw []byte) (*Schematic, error) {
	var sch Schematic
	if err := json.Unmarshal(raw, &sch); err != nil {
		return nil, fmt.Errorf("malformed schematic description: %w", err)
	}
	if sch.Design.Lib == "" || sch.Design.Cell == "" {
		return nil, fmt.Errorf("schematic description missing design lib/cell")
	}
	return &sch, nil
}
