package style

import (
	"math"

	"github.com/cktlab/drawdeck/internal/schematic"
)

// Epsilon absorbs float round-trip noise in numeric attribute compares.
const Epsilon = 1e-9

// Diff describes how two presets differ. OnlyVisibility is the cheap
// path: the caller can toggle layer visibility in place instead of
// re-rendering every artifact.
type Diff struct {
	Changed        bool
	OnlyVisibility bool
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// attrsEqual compares everything except the visibility flags.
func attrsEqual(a, b *LayerStyle) bool {
	return a.StrokeColor == b.StrokeColor &&
		floatEq(a.StrokeWidth, b.StrokeWidth) &&
		a.TextColor == b.TextColor &&
		a.FontFamily == b.FontFamily &&
		floatEq(a.FontZoom, b.FontZoom)
}

func visibilityEqual(a, b *LayerStyle) bool {
	return a.ShapeVisible == b.ShapeVisible && a.LabelVisible == b.LabelVisible
}

func orderEqual(a, b []schematic.Layer) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare computes the drift between two presets. Visibility flags and
// layer order count as visibility-only changes; every other attribute
// forces a full re-render.
func Compare(a, b *Preset) Diff {
	attrsSame := a.WireShowIntersection == b.WireShowIntersection &&
		floatEq(a.WireIntersectionScale, b.WireIntersectionScale)
	visSame := orderEqual(a.LayerOrder, b.LayerOrder)
	for _, l := range schematic.Layers {
		la, lb := a.Layer(l), b.Layer(l)
		if !attrsEqual(la, lb) {
			attrsSame = false
		}
		if !visibilityEqual(la, lb) {
			visSame = false
		}
	}
	if attrsSame && visSame {
		return Diff{}
	}
	return Diff{Changed: true, OnlyVisibility: attrsSame}
}

// Equal reports full structural equality under the epsilon compare.
func Equal(a, b *Preset) bool {
	return !Compare(a, b).Changed
}
