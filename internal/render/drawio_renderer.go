package render

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

// DrawIO is the built-in renderer emitting draw.io documents.
type DrawIO struct{}

// NewDrawIO creates the built-in renderer.
func NewDrawIO() *DrawIO { return &DrawIO{} }

// Render produces one document per symbol plus the schematic document.
// Symbol pages are independent, so they render in parallel.
func (r *DrawIO) Render(ctx context.Context, sch *schematic.Schematic, preset *style.Preset) (*Result, error) {
	if err := preset.Validate(); err != nil {
		return nil, renderErrorf(err, "invalid style preset")
	}
	symbols := make(map[artifact.Key]*schematic.Symbol, len(sch.Symbols))
	for i := range sch.Symbols {
		sym := &sch.Symbols[i]
		symbols[artifact.Key{Lib: sym.Lib, Cell: sym.Cell}] = sym
	}
	for _, inst := range sch.Instances {
		if _, ok := symbols[artifact.Key{Lib: inst.Lib, Cell: inst.Cell}]; !ok {
			return nil, renderErrorf(nil, "instance %s references unknown symbol %s/%s", inst.Name, inst.Lib, inst.Cell)
		}
	}

	result := &Result{Symbols: make(map[artifact.Key][]byte, len(symbols))}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for key, sym := range symbols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := renderSymbolPage(sym, preset)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Symbols[key] = doc
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		doc, err := renderSchematicPage(sch, symbols, preset)
		if err != nil {
			return err
		}
		mu.Lock()
		result.Schematic = doc
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func layerShapeID(l schematic.Layer) string { return l.ID() + "-shape" }
func layerLabelID(l schematic.Layer) string { return l.ID() + "-label" }

const wireIntersectionLayerID = "layer-wire-intersection"

// initLayers adds the layer cells in stacking order. The order list is
// walked back to front so the first-named layer ends up on top. The
// wire layer additionally carries the intersection layer, toggled by
// the wire intersection flag.
func initLayers(p *page, preset *style.Preset) {
	for i := len(preset.LayerOrder) - 1; i >= 0; i-- {
		l := preset.LayerOrder[i]
		ls := preset.Layer(l)
		if l == schematic.LayerWire {
			p.addLayer(wireIntersectionLayerID, string(l)+"-intersection", preset.WireShowIntersection)
		}
		p.addLayer(layerShapeID(l), string(l)+"-shape", ls.ShapeVisible)
		p.addLayer(layerLabelID(l), string(l)+"-label", ls.LabelVisible)
	}
}

// renderSymbolPage draws one symbol's shapes at origin.
func renderSymbolPage(sym *schematic.Symbol, preset *style.Preset) ([]byte, error) {
	p := newPage(sym.Lib + "/" + sym.Cell)
	initLayers(p, preset)
	for i := range sym.Shapes {
		sh := &sym.Shapes[i]
		if err := drawShape(p, sym.ObjectID(sh.Layer, i), sh, preset, identity); err != nil {
			return nil, renderErrorf(err, "symbol %s/%s shape %d", sym.Lib, sym.Cell, i)
		}
	}
	for i, pin := range sym.Pins {
		drawPinMarker(p, sym.ObjectID(schematic.LayerPin, len(sym.Shapes)+i),
			pin.Name, toPage(schematic.Point{pin.X, pin.Y}), preset)
	}
	return p.document()
}

// renderSchematicPage draws the whole schematic: placed instances,
// merged wires with junction dots, pins, and free-standing labels and
// shapes.
func renderSchematicPage(sch *schematic.Schematic, symbols map[artifact.Key]*schematic.Symbol, preset *style.Preset) ([]byte, error) {
	p := newPage(sch.Design.Lib + "/" + sch.Design.Cell)
	initLayers(p, preset)

	for idx := range sch.Instances {
		inst := &sch.Instances[idx]
		sym := symbols[artifact.Key{Lib: inst.Lib, Cell: inst.Cell}]
		placed := func(pt schematic.Point) (schematic.Point, error) { return place(inst, pt) }
		for i := range sym.Shapes {
			sh := &sym.Shapes[i]
			id := fmt.Sprintf("inst-%s-%s-%d", sanitizeID(inst.Name), sh.Layer, i)
			if err := drawShape(p, id, sh, preset, placed); err != nil {
				return nil, renderErrorf(err, "instance %s shape %d", inst.Name, i)
			}
		}
		// Instance name label above the placement point.
		origin, err := place(inst, schematic.Point{0, 0})
		if err != nil {
			return nil, renderErrorf(err, "instance %s", inst.Name)
		}
		drawLabel(p, "inst-label-"+sanitizeID(inst.Name), schematic.LayerInstance,
			inst.Name, origin, schematic.JustifyLowerLeft, 0.1, preset)
	}

	if err := drawWires(p, sch.Wires, preset); err != nil {
		return nil, err
	}

	for _, pin := range sch.Pins {
		drawPinMarker(p, "pin-"+sanitizeID(pin.Name), pin.Name, toPage(schematic.Point{pin.X, pin.Y}), preset)
	}
	for i := range sch.Labels {
		sh := &sch.Labels[i]
		if err := drawShape(p, fmt.Sprintf("label-%d", i), sh, preset, identity); err != nil {
			return nil, renderErrorf(err, "label %d", i)
		}
	}
	for i := range sch.Shapes {
		sh := &sch.Shapes[i]
		if err := drawShape(p, fmt.Sprintf("shape-%d", i), sh, preset, identity); err != nil {
			return nil, renderErrorf(err, "shape %d", i)
		}
	}
	return p.document()
}

// drawWires emits merged per-net polylines plus intersection dots at
// junction points.
func drawWires(p *page, wires []schematic.Wire, preset *style.Preset) error {
	ls := preset.Layer(schematic.LayerWire)
	edgeStyle := fmt.Sprintf("endArrow=none;strokeColor=%s;strokeWidth=%s;",
		ls.StrokeColor, num(ls.StrokeWidth))
	dot := 8 * preset.WireIntersectionScale

	for net, segments := range netSegments(wires) {
		for n, chain := range mergeChains(segments) {
			pts := make([][2]float64, len(chain))
			for i, pt := range chain {
				pp := toPage(pt)
				pts[i] = [2]float64{pp[0], pp[1]}
			}
			p.addEdge(wireID(net, n), layerShapeID(schematic.LayerWire), edgeStyle, pts)
		}
		for n, j := range junctions(segments) {
			pp := toPage(j)
			p.addVertex(wireID(net, n)+"-dot", wireIntersectionLayerID, "",
				fmt.Sprintf("ellipse;fillColor=%s;strokeColor=%s;", ls.StrokeColor, ls.StrokeColor),
				pp[0]-dot/2, pp[1]-dot/2, dot, dot)
		}
	}
	return nil
}

// wireID builds a stable edge ID from the net name, or a random one for
// anonymous nets.
func wireID(net string, n int) string {
	if net == "" {
		return "wire-" + uuid.New().String()
	}
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, net)
	return fmt.Sprintf("wire-%s-%d", safe, n)
}

func identity(pt schematic.Point) (schematic.Point, error) {
	return toPage(pt), nil
}
