package render

import (
	"fmt"

	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

// transformFn maps a schematic-space point into page pixels.
type transformFn func(schematic.Point) (schematic.Point, error)

// drawShape emits one description shape onto its layer, styled by the
// layer's preset entry.
func drawShape(p *page, id string, sh *schematic.Shape, preset *style.Preset, tf transformFn) error {
	ls := preset.Layer(sh.Layer)
	if ls == nil {
		return fmt.Errorf("unknown layer: %q", sh.Layer)
	}
	switch sh.Type {
	case schematic.ShapeLine:
		pts, err := transformAll(sh.Points, tf)
		if err != nil {
			return err
		}
		p.addEdge(id, layerShapeID(sh.Layer), strokeStyle("endArrow=none;", ls), pts)
	case schematic.ShapePolygon:
		pts, err := transformAll(sh.Points, tf)
		if err != nil {
			return err
		}
		// Close the outline when the description leaves it open.
		if pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		p.addEdge(id, layerShapeID(sh.Layer), strokeStyle("endArrow=none;"+fillPrefix(sh, ls), ls), pts)
	case schematic.ShapeRect, schematic.ShapeEllipse:
		a, err := tf(sh.BBox[0])
		if err != nil {
			return err
		}
		b, err := tf(sh.BBox[1])
		if err != nil {
			return err
		}
		x, y, w, h := bounds(a, b)
		prefix := "rounded=0;" + fillPrefix(sh, ls)
		if sh.Type == schematic.ShapeEllipse {
			prefix = "ellipse;" + fillPrefix(sh, ls)
		}
		p.addVertex(id, layerShapeID(sh.Layer), "", strokeStyle(prefix, ls), x, y, w, h)
	case schematic.ShapeLabel:
		anchor, err := tf(sh.XY)
		if err != nil {
			return err
		}
		drawLabel(p, id, sh.Layer, sh.Text, anchor, sh.Justify, sh.Height, preset)
	default:
		return fmt.Errorf("unknown shape type: %s", sh.Type)
	}
	return nil
}

// drawLabel emits a text cell. Font size follows the description height
// scaled by the layer's font zoom; width is estimated from the text
// length as the original renderer does.
func drawLabel(p *page, id string, layer schematic.Layer, text string, anchor schematic.Point, justify schematic.Justify, height float64, preset *style.Preset) {
	ls := preset.Layer(layer)
	fontSize := height * Scale * ls.FontZoom
	if fontSize <= 0 {
		fontSize = 12 * ls.FontZoom
	}
	w := fontSize * float64(len(text)) / 2
	h := fontSize
	x, y := justifyAnchor(anchor, justify, w, h)
	styleStr := fmt.Sprintf("text;html=1;align=%s;verticalAlign=%s;fontColor=%s;fontSize=%s;fontFamily=%s;",
		alignOf(justify), valignOf(justify), ls.TextColor, num(fontSize), ls.FontFamily)
	p.addVertex(id, layerLabelID(layer), text, styleStr, x, y, w, h)
}

// drawPinMarker emits the pin diamond plus its name label.
func drawPinMarker(p *page, id, name string, at schematic.Point, preset *style.Preset) {
	ls := preset.Layer(schematic.LayerPin)
	size := 10 * ls.StrokeWidth
	p.addVertex(id, layerShapeID(schematic.LayerPin), "",
		strokeStyle("rhombus;fillColor=none;", ls),
		at[0]-size/2, at[1]-size/2, size, size)
	drawLabel(p, id+"-name", schematic.LayerPin, name,
		schematic.Point{at[0] + size, at[1]}, schematic.JustifyCenterLeft, 0.08, preset)
}

func transformAll(pts []schematic.Point, tf transformFn) ([][2]float64, error) {
	out := make([][2]float64, len(pts))
	for i, pt := range pts {
		tp, err := tf(pt)
		if err != nil {
			return nil, err
		}
		out[i] = [2]float64{tp[0], tp[1]}
	}
	return out, nil
}

func strokeStyle(prefix string, ls *style.LayerStyle) string {
	return fmt.Sprintf("%sstrokeColor=%s;strokeWidth=%s;", prefix, ls.StrokeColor, num(ls.StrokeWidth))
}

// fillPrefix fills closed shapes with the stroke color unless the
// description asks for outline only.
func fillPrefix(sh *schematic.Shape, ls *style.LayerStyle) string {
	if sh.FillStyle == schematic.FillStyleOutline {
		return "fillColor=none;"
	}
	return "fillColor=" + ls.StrokeColor + ";"
}

func alignOf(j schematic.Justify) string {
	switch j {
	case schematic.JustifyUpperLeft, schematic.JustifyCenterLeft, schematic.JustifyLowerLeft:
		return "left"
	case schematic.JustifyUpperRight, schematic.JustifyCenterRight, schematic.JustifyLowerRight:
		return "right"
	}
	return "center"
}

func valignOf(j schematic.Justify) string {
	switch j {
	case schematic.JustifyUpperLeft, schematic.JustifyUpperCenter, schematic.JustifyUpperRight:
		return "top"
	case schematic.JustifyLowerLeft, schematic.JustifyLowerCenter, schematic.JustifyLowerRight:
		return "bottom"
	}
	return "middle"
}

// justifyAnchor positions the label box so the anchor point sits at the
// justified corner or edge midpoint.
func justifyAnchor(anchor schematic.Point, j schematic.Justify, w, h float64) (x, y float64) {
	x, y = anchor[0], anchor[1]
	switch alignOf(j) {
	case "center":
		x -= w / 2
	case "right":
		x -= w
	}
	switch valignOf(j) {
	case "middle":
		y -= h / 2
	case "bottom":
		y -= h
	}
	return x, y
}
