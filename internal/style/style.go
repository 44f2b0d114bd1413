package style

import (
	"fmt"

	"github.com/cktlab/drawdeck/internal/schematic"
)

// LayerStyle holds the visual attributes of one schematic layer.
// Shape and label visibility are independent so annotations can be
// hidden while their geometry stays on screen.
type LayerStyle struct {
	StrokeColor  string  `json:"stroke_color" yaml:"stroke_color"`
	StrokeWidth  float64 `json:"stroke_width" yaml:"stroke_width"`
	TextColor    string  `json:"text_color" yaml:"text_color"`
	FontFamily   string  `json:"font_family" yaml:"font_family"`
	FontZoom     float64 `json:"font_zoom" yaml:"font_zoom"`
	ShapeVisible bool    `json:"shape_visible" yaml:"shape_visible"`
	LabelVisible bool    `json:"label_visible" yaml:"label_visible"`
}

// Preset is a complete named style configuration: one LayerStyle per
// layer, the layer stacking order, and the wire-intersection display
// parameters.
type Preset struct {
	Name string `json:"name" yaml:"name"`

	LayerOrder []schematic.Layer `json:"layer_order" yaml:"layer_order"`

	Device   LayerStyle `json:"device" yaml:"device"`
	Instance LayerStyle `json:"instance" yaml:"instance"`
	Wire     LayerStyle `json:"wire" yaml:"wire"`
	Annotate LayerStyle `json:"annotate" yaml:"annotate"`
	Pin      LayerStyle `json:"pin" yaml:"pin"`
	Text     LayerStyle `json:"text" yaml:"text"`

	WireShowIntersection  bool    `json:"wire_show_intersection" yaml:"wire_show_intersection"`
	WireIntersectionScale float64 `json:"wire_intersection_scale" yaml:"wire_intersection_scale"`
}

// DefaultName is the name of the built-in preset.
const DefaultName = "default"

// Default returns the built-in preset. Colors follow the classic
// schematic-capture palette.
func Default() *Preset {
	return &Preset{
		Name: DefaultName,
		LayerOrder: []schematic.Layer{
			schematic.LayerText,
			schematic.LayerPin,
			schematic.LayerWire,
			schematic.LayerAnnotate,
			schematic.LayerInstance,
			schematic.LayerDevice,
		},
		Device: LayerStyle{
			StrokeColor: "#00FF00", StrokeWidth: 2, TextColor: "#FF0000",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: true, LabelVisible: true,
		},
		Instance: LayerStyle{
			StrokeColor: "#0000FF", StrokeWidth: 1, TextColor: "#0000FF",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: true, LabelVisible: false,
		},
		Wire: LayerStyle{
			StrokeColor: "#00FFFF", StrokeWidth: 2, TextColor: "#00CCCC",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: true, LabelVisible: true,
		},
		Annotate: LayerStyle{
			StrokeColor: "#00FF00", StrokeWidth: 1, TextColor: "#FF9900",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: false, LabelVisible: false,
		},
		Pin: LayerStyle{
			StrokeColor: "#FF0000", StrokeWidth: 2, TextColor: "#FF0000",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: true, LabelVisible: true,
		},
		Text: LayerStyle{
			StrokeColor: "#666666", StrokeWidth: 1, TextColor: "#666666",
			FontFamily: "Helvetica", FontZoom: 1, ShapeVisible: true, LabelVisible: true,
		},
		WireShowIntersection:  true,
		WireIntersectionScale: 1,
	}
}

// Layer returns the LayerStyle for the given layer.
func (p *Preset) Layer(l schematic.Layer) *LayerStyle {
	switch l {
	case schematic.LayerDevice:
		return &p.Device
	case schematic.LayerInstance:
		return &p.Instance
	case schematic.LayerWire:
		return &p.Wire
	case schematic.LayerAnnotate:
		return &p.Annotate
	case schematic.LayerPin:
		return &p.Pin
	case schematic.LayerText:
		return &p.Text
	}
	return nil
}

// Clone deep-copies the preset.
func (p *Preset) Clone() *Preset {
	cp := *p
	cp.LayerOrder = append([]schematic.Layer(nil), p.LayerOrder...)
	return &cp
}

// Validate checks structural soundness: every layer present exactly once
// in the order, positive zoom factors.
func (p *Preset) Validate() error {
	if len(p.LayerOrder) != len(schematic.Layers) {
		return &ValidationError{
			Field:   "layer_order",
			Message: fmt.Sprintf("layer order must list all %d layers, got %d", len(schematic.Layers), len(p.LayerOrder)),
		}
	}
	seen := make(map[schematic.Layer]bool, len(p.LayerOrder))
	for _, l := range p.LayerOrder {
		if _, err := schematic.ParseLayer(string(l)); err != nil {
			return &ValidationError{Field: "layer_order", Message: err.Error()}
		}
		if seen[l] {
			return &ValidationError{Field: "layer_order", Message: fmt.Sprintf("repeated layer: %s", l)}
		}
		seen[l] = true
	}
	for _, l := range schematic.Layers {
		ls := p.Layer(l)
		if ls.FontZoom <= 0 {
			return &ValidationError{
				Field:   string(l) + ".font_zoom",
				Message: "font zoom must be positive",
			}
		}
		if ls.StrokeWidth < 0 {
			return &ValidationError{
				Field:   string(l) + ".stroke_width",
				Message: "stroke width must not be negative",
			}
		}
	}
	if p.WireIntersectionScale <= 0 {
		return &ValidationError{Field: "wire_intersection_scale", Message: "scale must be positive"}
	}
	return nil
}
