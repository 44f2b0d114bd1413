package style

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePresetYAML(t *testing.T) {
	payload := []byte(`
name: dark
layer_order: [text, pin, wire, annotate, instance, device]
wire:
  stroke_color: "#00AAAA"
  stroke_width: 2.5
  text_color: "#008888"
  font_family: Courier
  font_zoom: 1.2
  shape_visible: true
  label_visible: false
wire_show_intersection: false
wire_intersection_scale: 1.5
`)
	p, err := ParsePreset(payload)
	require.NoError(t, err)
	require.Equal(t, "dark", p.Name)
	require.Equal(t, "#00AAAA", p.Wire.StrokeColor)
	require.Equal(t, 2.5, p.Wire.StrokeWidth)
	require.False(t, p.Wire.LabelVisible)
	require.False(t, p.WireShowIntersection)
	require.Equal(t, 1.5, p.WireIntersectionScale)
	// Unnamed sections keep the built-in defaults.
	require.Equal(t, Default().Device, p.Device)
}

func TestParsePresetJSON(t *testing.T) {
	payload := []byte(`{"name":"flat","device":{"stroke_color":"#333333","stroke_width":1,"text_color":"#333333","font_family":"Helvetica","font_zoom":1,"shape_visible":true,"label_visible":true},"layer_order":["text","pin","wire","annotate","instance","device"],"wire_show_intersection":true,"wire_intersection_scale":1}`)
	p, err := ParsePreset(payload)
	require.NoError(t, err)
	require.Equal(t, "flat", p.Name)
	require.Equal(t, "#333333", p.Device.StrokeColor)
}

func TestParsePresetRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			name:    "repeated layer in order",
			payload: "layer_order: [text, text, wire, annotate, instance, device]",
			field:   "layer_order",
		},
		{
			name:    "unknown layer in order",
			payload: "layer_order: [text, pin, wire, annotate, instance, bogus]",
			field:   "layer_order",
		},
		{
			name:    "short layer order",
			payload: "layer_order: [text, pin]",
			field:   "layer_order",
		},
		{
			name:    "explicitly empty layer order",
			payload: "layer_order: []",
			field:   "layer_order",
		},
		{
			name:    "non-positive font zoom",
			payload: "wire:\n  font_zoom: 0\n  stroke_width: 1",
			field:   "wire.font_zoom",
		},
		{
			name:    "negative stroke width",
			payload: "pin:\n  stroke_width: -1\n  font_zoom: 1",
			field:   "pin.stroke_width",
		},
		{
			name:    "non-positive intersection scale",
			payload: "wire_intersection_scale: 0",
			field:   "wire_intersection_scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePreset([]byte(tt.payload))
			require.Error(t, err)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			require.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestParsePresetEmptyAndGarbage(t *testing.T) {
	_, err := ParsePreset(nil)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = ParsePreset([]byte("\t{not yaml: ["))
	require.ErrorAs(t, err, &validation)
}
