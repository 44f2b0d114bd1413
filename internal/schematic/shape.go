package schematic

import (
	"encoding/json"
	"fmt"
)

// ShapeType discriminates the Shape union.
type ShapeType string

const (
	ShapePolygon ShapeType = "polygon"
	ShapeRect    ShapeType = "rect"
	ShapeLabel   ShapeType = "label"
	ShapeLine    ShapeType = "line"
	ShapeEllipse ShapeType = "ellipse"
)

// Justify positions label text relative to its anchor point.
type Justify string

const (
	JustifyUpperLeft    Justify = "upperLeft"
	JustifyUpperCenter  Justify = "upperCenter"
	JustifyUpperRight   Justify = "upperRight"
	JustifyCenterLeft   Justify = "centerLeft"
	JustifyCenterCenter Justify = "centerCenter"
	JustifyCenterRight  Justify = "centerRight"
	JustifyLowerLeft    Justify = "lowerLeft"
	JustifyLowerCenter  Justify = "lowerCenter"
	JustifyLowerRight   Justify = "lowerRight"
)

// FillStyleOutline means the shape is outlined but not filled.
const FillStyleOutline = 1

// Shape is a discriminated union over the drawable primitives. Type
// identifies which field group is populated:
//
//	polygon, line      -> Points
//	rect, ellipse      -> BBox
//	label              -> Text, XY, Orient, Height, Justify
type Shape struct {
	Type  ShapeType `json:"type"`
	Layer Layer     `json:"layer"`

	FillStyle int     `json:"fillStyle,omitempty"`
	Points    []Point `json:"points,omitempty"`
	BBox      []Point `json:"bBox,omitempty"`

	Text    string  `json:"text,omitempty"`
	XY      Point   `json:"xy,omitempty"`
	Orient  string  `json:"orient,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Justify Justify `json:"justify,omitempty"`
}

// shapeAlias avoids recursing into UnmarshalJSON.
type shapeAlias Shape

// UnmarshalJSON applies the outline default for fill style and validates
// the discriminator and its required fields.
func (s *Shape) UnmarshalJSON(data []byte) error {
	alias := shapeAlias{FillStyle: FillStyleOutline}
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*s = Shape(alias)
	return s.validate()
}

func (s *Shape) validate() error {
	if s.Layer == "" {
		return fmt.Errorf("%s shape has no layer", s.Type)
	}
	if _, err := ParseLayer(string(s.Layer)); err != nil {
		return err
	}
	switch s.Type {
	case ShapePolygon, ShapeLine:
		if len(s.Points) < 2 {
			return fmt.Errorf("%s shape needs at least 2 points, got %d", s.Type, len(s.Points))
		}
	case ShapeRect, ShapeEllipse:
		if len(s.BBox) != 2 {
			return fmt.Errorf("%s shape needs a 2-point bBox, got %d points", s.Type, len(s.BBox))
		}
	case ShapeLabel:
		if s.Text == "" {
			return fmt.Errorf("label shape needs text")
		}
	default:
		return fmt.Errorf("unknown shape type: %s", s.Type)
	}
	return nil
}
