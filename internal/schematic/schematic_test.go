package schematic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDescription = `{
  "design": {"lib": "analog", "cell": "latch"},
  "instances": [
    {"name": "I0", "lib": "analog", "cell": "inv", "x": 0, "y": 0, "orient": "R0"}
  ],
  "wires": [
    {"net": "n1", "points": [[1, 0.5], [2, 0.5]]}
  ],
  "pins": [
    {"name": "CLK", "direction": "input", "x": -1, "y": 0.5}
  ],
  "symbols": [
    {
      "lib": "analog", "cell": "inv",
      "shapes": [
        {"type": "polygon", "layer": "device", "points": [[0,0],[0,1],[1,0.5]]},
        {"type": "rect", "layer": "annotate", "fillStyle": 0, "bBox": [[0,0],[1,1]]},
        {"type": "label", "layer": "device", "text": "INV", "xy": [0.5,0.5], "orient": "R0", "height": 0.1, "justify": "centerCenter"},
        {"type": "line", "layer": "pin", "points": [[0,0.5],[-0.2,0.5]]},
        {"type": "ellipse", "layer": "device", "bBox": [[1,0.4],[1.2,0.6]]}
      ],
      "pins": [{"name": "in", "direction": "input", "x": 0, "y": 0.5}]
    }
  ],
  "labels": [],
  "shapes": []
}`

func TestParseFullDescription(t *testing.T) {
	sch, err := Parse([]byte(sampleDescription))
	require.NoError(t, err)
	require.Equal(t, Design{Lib: "analog", Cell: "latch"}, sch.Design)
	require.Len(t, sch.Instances, 1)
	require.Len(t, sch.Symbols, 1)

	sym := sch.Symbols[0]
	require.Len(t, sym.Shapes, 5)
	require.Equal(t, ShapePolygon, sym.Shapes[0].Type)
	require.Equal(t, LayerDevice, sym.Shapes[0].Layer)
	// Unspecified fill style defaults to outline; explicit zero sticks.
	require.Equal(t, FillStyleOutline, sym.Shapes[0].FillStyle)
	require.Equal(t, 0, sym.Shapes[1].FillStyle)
	require.Equal(t, "INV", sym.Shapes[2].Text)
	require.Equal(t, JustifyCenterCenter, sym.Shapes[2].Justify)
}

func TestParseRejectsMalformedDescriptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "not json at all"},
		{name: "missing design", raw: `{"instances": []}`},
		{name: "unknown layer", raw: `{"design":{"lib":"a","cell":"b"},"symbols":[{"lib":"a","cell":"s","shapes":[{"type":"line","layer":"copper","points":[[0,0],[1,1]]}]}]}`},
		{name: "shape without layer", raw: `{"design":{"lib":"a","cell":"b"},"shapes":[{"type":"line","points":[[0,0],[1,1]]}]}`},
		{name: "unknown shape type", raw: `{"design":{"lib":"a","cell":"b"},"shapes":[{"type":"arc","layer":"wire","points":[[0,0],[1,1]]}]}`},
		{name: "line with one point", raw: `{"design":{"lib":"a","cell":"b"},"shapes":[{"type":"line","layer":"wire","points":[[0,0]]}]}`},
		{name: "rect without bbox", raw: `{"design":{"lib":"a","cell":"b"},"shapes":[{"type":"rect","layer":"wire"}]}`},
		{name: "label without text", raw: `{"design":{"lib":"a","cell":"b"},"shapes":[{"type":"label","layer":"text","xy":[0,0]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestLayerParsingAndIDs(t *testing.T) {
	l, err := ParseLayer("wire")
	require.NoError(t, err)
	require.Equal(t, LayerWire, l)
	require.Equal(t, "layer-wire", l.ID())

	_, err = ParseLayer("copper")
	require.Error(t, err)

	var bad Layer
	require.Error(t, json.Unmarshal([]byte(`"copper"`), &bad))
}

func TestSymbolObjectID(t *testing.T) {
	sym := Symbol{Lib: "analog", Cell: "inv"}
	require.Equal(t, "analog/inv-device-3", sym.ObjectID(LayerDevice, 3))
}
