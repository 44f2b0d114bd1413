package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

func testSchematic() *schematic.Schematic {
	return &schematic.Schematic{
		Design: schematic.Design{Lib: "analog", Cell: "latch"},
		Symbols: []schematic.Symbol{
			{
				Lib:  "analog",
				Cell: "inv",
				Shapes: []schematic.Shape{
					{Type: schematic.ShapePolygon, Layer: schematic.LayerDevice, FillStyle: schematic.FillStyleOutline,
						Points: []schematic.Point{{0, 0}, {0, 1}, {1, 0.5}}},
					{Type: schematic.ShapeLabel, Layer: schematic.LayerDevice, Text: "INV",
						XY: schematic.Point{0.5, 0.5}, Height: 0.1, Justify: schematic.JustifyCenterCenter},
				},
				Pins: []schematic.TemplatePin{
					{Name: "in", Direction: "input", X: 0, Y: 0.5},
					{Name: "out", Direction: "output", X: 1, Y: 0.5},
				},
			},
		},
		Instances: []schematic.Instance{
			{Name: "I0", Lib: "analog", Cell: "inv", X: 0, Y: 0, Orient: "R0"},
			{Name: "I1", Lib: "analog", Cell: "inv", X: 2, Y: 0, Orient: "MY"},
		},
		Wires: []schematic.Wire{
			{Net: "n1", Points: []schematic.Point{{1, 0.5}, {2, 0.5}}},
			{Net: "n1", Points: []schematic.Point{{1.5, 0.5}, {1.5, 1.5}}},
			{Net: "n1", Points: []schematic.Point{{1.5, 0.5}, {1.5, -0.5}}},
		},
		Pins: []schematic.Pin{
			{Name: "CLK", Direction: "input", X: -1, Y: 0.5},
		},
	}
}

func TestRenderProducesAllArtifacts(t *testing.T) {
	r := NewDrawIO()
	result, err := r.Render(context.Background(), testSchematic(), style.Default())
	require.NoError(t, err)

	require.NotEmpty(t, result.Schematic)
	require.Len(t, result.Symbols, 1)
	require.Contains(t, result.Symbols, artifact.Key{Lib: "analog", Cell: "inv"})
}

func TestRenderedDocumentsAreWellFormedDiagrams(t *testing.T) {
	r := NewDrawIO()
	result, err := r.Render(context.Background(), testSchematic(), style.Default())
	require.NoError(t, err)

	top := string(result.Schematic)
	require.True(t, strings.HasPrefix(top, "<?xml"))
	require.Contains(t, top, "<mxfile")
	require.Contains(t, top, `name="analog/latch"`)

	// Every layer cell must be present, shape and label planes alike.
	for _, l := range schematic.Layers {
		require.Contains(t, top, `id="layer-`+string(l)+`-shape"`)
		require.Contains(t, top, `id="layer-`+string(l)+`-label"`)
	}
	require.Contains(t, top, `id="layer-wire-intersection"`)

	sym := string(result.Symbols[artifact.Key{Lib: "analog", Cell: "inv"}])
	require.Contains(t, sym, `name="analog/inv"`)
	require.Contains(t, sym, "INV")
}

func TestRenderAppliesLayerVisibility(t *testing.T) {
	preset := style.Default()
	preset.Device.ShapeVisible = false
	preset.WireShowIntersection = false

	r := NewDrawIO()
	result, err := r.Render(context.Background(), testSchematic(), preset)
	require.NoError(t, err)

	top := string(result.Schematic)
	require.Contains(t, top, `id="layer-device-shape" value="device-shape" parent="0" visible="0"`)
	require.Contains(t, top, `id="layer-wire-intersection" value="wire-intersection" parent="0" visible="0"`)
}

func TestRenderAppliesStrokeStyle(t *testing.T) {
	preset := style.Default()
	preset.Wire.StrokeColor = "#ABCDEF"

	r := NewDrawIO()
	result, err := r.Render(context.Background(), testSchematic(), preset)
	require.NoError(t, err)
	require.Contains(t, string(result.Schematic), "strokeColor=#ABCDEF")
}

func TestRenderEmitsJunctionDots(t *testing.T) {
	// The n1 net tees at (1.5, 0.5).
	r := NewDrawIO()
	result, err := r.Render(context.Background(), testSchematic(), style.Default())
	require.NoError(t, err)
	require.Contains(t, string(result.Schematic), "-dot")
}

func TestRenderUnknownSymbolFails(t *testing.T) {
	sch := testSchematic()
	sch.Instances = append(sch.Instances, schematic.Instance{
		Name: "IX", Lib: "analog", Cell: "missing",
	})

	r := NewDrawIO()
	_, err := r.Render(context.Background(), sch, style.Default())
	require.Error(t, err)
	var renderErr *Error
	require.ErrorAs(t, err, &renderErr)
	require.Contains(t, renderErr.Error(), "missing")
}

func TestRenderShapeWithoutLayerFails(t *testing.T) {
	sch := testSchematic()
	sch.Shapes = append(sch.Shapes, schematic.Shape{
		Type:   schematic.ShapeLine,
		Points: []schematic.Point{{0, 0}, {1, 1}},
	})

	r := NewDrawIO()
	_, err := r.Render(context.Background(), sch, style.Default())
	require.Error(t, err)
	var renderErr *Error
	require.ErrorAs(t, err, &renderErr)
	require.Contains(t, renderErr.Error(), "layer")
}

func TestRenderSymbolShapeWithUnknownLayerFails(t *testing.T) {
	sch := testSchematic()
	sch.Symbols[0].Shapes = append(sch.Symbols[0].Shapes, schematic.Shape{
		Type: schematic.ShapeLine, Layer: "copper",
		Points: []schematic.Point{{0, 0}, {1, 1}},
	})

	r := NewDrawIO()
	_, err := r.Render(context.Background(), sch, style.Default())
	var renderErr *Error
	require.ErrorAs(t, err, &renderErr)
}

func TestRenderInvalidOrientationFails(t *testing.T) {
	sch := testSchematic()
	sch.Instances[0].Orient = "R45"

	r := NewDrawIO()
	_, err := r.Render(context.Background(), sch, style.Default())
	require.Error(t, err)
	var renderErr *Error
	require.ErrorAs(t, err, &renderErr)
}

func TestRenderInvalidPresetFails(t *testing.T) {
	preset := style.Default()
	preset.LayerOrder[0] = preset.LayerOrder[1] // repeat layer

	r := NewDrawIO()
	_, err := r.Render(context.Background(), testSchematic(), preset)
	var renderErr *Error
	require.ErrorAs(t, err, &renderErr)
}

func TestRenderIsDeterministic(t *testing.T) {
	sch := testSchematic()
	sch.Wires = []schematic.Wire{
		{Net: "n1", Points: []schematic.Point{{1, 0.5}, {2, 0.5}}},
	}
	r := NewDrawIO()
	a, err := r.Render(context.Background(), sch, style.Default())
	require.NoError(t, err)
	b, err := r.Render(context.Background(), sch, style.Default())
	require.NoError(t, err)
	require.Equal(t, string(a.Schematic), string(b.Schematic))
}
