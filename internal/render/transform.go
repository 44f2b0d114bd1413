package render

import (
	"fmt"

	"github.com/cktlab/drawdeck/internal/schematic"
)

// Scale converts schematic units to draw.io pixels.
const Scale = 200.0

// orient applies an EDA placement orientation to a point in symbol-local
// coordinates. R* rotate counterclockwise; M* mirror about the Y axis
// before rotating.
func orient(code string, p schematic.Point) (schematic.Point, error) {
	x, y := p[0], p[1]
	switch code {
	case "", "R0":
		return schematic.Point{x, y}, nil
	case "R90":
		return schematic.Point{-y, x}, nil
	case "R180":
		return schematic.Point{-x, -y}, nil
	case "R270":
		return schematic.Point{y, -x}, nil
	case "MY":
		return schematic.Point{-x, y}, nil
	case "MYR90":
		return schematic.Point{-y, -x}, nil
	case "MX":
		return schematic.Point{x, -y}, nil
	case "MXR90":
		return schematic.Point{y, x}, nil
	}
	return schematic.Point{}, fmt.Errorf("unknown orientation: %s", code)
}

// place maps a symbol-local point through an instance placement into
// page pixels. The schematic Y axis points up; draw.io's points down.
func place(inst *schematic.Instance, p schematic.Point) (schematic.Point, error) {
	rp, err := orient(inst.Orient, p)
	if err != nil {
		return schematic.Point{}, err
	}
	return toPage(schematic.Point{rp[0] + inst.X, rp[1] + inst.Y}), nil
}

// toPage converts schematic units to page pixels, flipping Y.
func toPage(p schematic.Point) schematic.Point {
	return schematic.Point{p[0] * Scale, -p[1] * Scale}
}

// bounds returns the page-space bounding box of two corner points.
func bounds(a, b schematic.Point) (x, y, w, h float64) {
	x = min(a[0], b[0])
	y = min(a[1], b[1])
	return x, y, max(a[0], b[0]) - x, max(a[1], b[1]) - y
}
