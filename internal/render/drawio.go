package render

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Minimal mxGraph document model: an mxfile wrapping one diagram whose
// root holds a flat cell list. Layers are cells parented to "0";
// everything else parents to a layer cell.

type mxPoint struct {
	XMLName xml.Name `xml:"mxPoint"`
	X       float64  `xml:"x,attr"`
	Y       float64  `xml:"y,attr"`
	As      string   `xml:"as,attr,omitempty"`
}

type mxPointArray struct {
	XMLName xml.Name  `xml:"Array"`
	As      string    `xml:"as,attr"`
	Points  []mxPoint `xml:"mxPoint"`
}

type mxGeometry struct {
	XMLName   xml.Name      `xml:"mxGeometry"`
	X         string        `xml:"x,attr,omitempty"`
	Y         string        `xml:"y,attr,omitempty"`
	Width     string        `xml:"width,attr,omitempty"`
	Height    string        `xml:"height,attr,omitempty"`
	Relative  string        `xml:"relative,attr,omitempty"`
	As        string        `xml:"as,attr"`
	EndPoints []mxPoint     `xml:"mxPoint,omitempty"`
	Points    *mxPointArray `xml:"Array,omitempty"`
}

type mxCell struct {
	XMLName  xml.Name    `xml:"mxCell"`
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Visible  string      `xml:"visible,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxGraphModel struct {
	XMLName xml.Name `xml:"mxGraphModel"`
	Grid    int      `xml:"grid,attr"`
	Root    mxRoot   `xml:"root"`
}

type mxDiagram struct {
	XMLName xml.Name `xml:"diagram"`
	Name    string   `xml:"name,attr"`
	ID      string   `xml:"id,attr"`
	Model   mxGraphModel
}

type mxFile struct {
	XMLName  xml.Name `xml:"mxfile"`
	Host     string   `xml:"host,attr"`
	Diagrams []mxDiagram
}

// page accumulates cells for one diagram document.
type page struct {
	name  string
	cells []mxCell
}

func newPage(name string) *page {
	return &page{
		name: name,
		cells: []mxCell{
			{ID: "0"},
			{ID: "1", Parent: "0"},
		},
	}
}

// addLayer appends a layer cell parented to the model root.
func (p *page) addLayer(id, value string, visible bool) {
	vis := "1"
	if !visible {
		vis = "0"
	}
	p.cells = append(p.cells, mxCell{
		ID:      id,
		Value:   value,
		Parent:  "0",
		Visible: vis,
	})
}

// addVertex appends a positioned box cell to a layer.
func (p *page) addVertex(id, parent, value, style string, x, y, w, h float64) {
	p.cells = append(p.cells, mxCell{
		ID:     id,
		Value:  value,
		Style:  style,
		Parent: parent,
		Vertex: "1",
		Geometry: &mxGeometry{
			X:      num(x),
			Y:      num(y),
			Width:  num(w),
			Height: num(h),
			As:     "geometry",
		},
	})
}

// addEdge appends a polyline edge cell to a layer. The first and last
// points become the source and target; interior points are waypoints.
func (p *page) addEdge(id, parent, style string, pts [][2]float64) {
	if len(pts) < 2 {
		return
	}
	geo := &mxGeometry{
		Relative: "1",
		As:       "geometry",
		EndPoints: []mxPoint{
			{X: pts[0][0], Y: pts[0][1], As: "sourcePoint"},
			{X: pts[len(pts)-1][0], Y: pts[len(pts)-1][1], As: "targetPoint"},
		},
	}
	if len(pts) > 2 {
		arr := &mxPointArray{As: "points"}
		for _, pt := range pts[1 : len(pts)-1] {
			arr.Points = append(arr.Points, mxPoint{X: pt[0], Y: pt[1]})
		}
		geo.Points = arr
	}
	p.cells = append(p.cells, mxCell{
		ID:       id,
		Style:    style,
		Parent:   parent,
		Edge:     "1",
		Geometry: geo,
	})
}

// document marshals the page into a standalone .drawio file.
func (p *page) document() ([]byte, error) {
	file := mxFile{
		Host: "drawdeck",
		Diagrams: []mxDiagram{{
			Name:  p.name,
			ID:    "page-" + sanitizeID(p.name),
			Model: mxGraphModel{Grid: 0, Root: mxRoot{Cells: p.cells}},
		}},
	}
	out, err := xml.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal diagram: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}

func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '/':
			return r
		}
		return '_'
	}, s)
}
