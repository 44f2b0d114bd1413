package render

import (
	"regexp"
	"strings"

	"github.com/cktlab/drawdeck/internal/schematic"
	"github.com/cktlab/drawdeck/internal/style"
)

var visibleAttrRe = regexp.MustCompile(`visible="[01]"`)

// PatchVisibility rewrites the visible attribute of the layer cells in
// an existing document to match the preset, leaving every other cell
// byte-for-byte untouched. Visibility-only style changes go through
// here instead of a re-render so committed viewer edits survive. A
// document without the layer cells (foreign content) passes through
// unchanged.
func PatchVisibility(doc []byte, preset *style.Preset) []byte {
	out := string(doc)
	for _, l := range schematic.Layers {
		ls := preset.Layer(l)
		out = patchLayerCell(out, layerShapeID(l), ls.ShapeVisible)
		out = patchLayerCell(out, layerLabelID(l), ls.LabelVisible)
	}
	out = patchLayerCell(out, wireIntersectionLayerID, preset.WireShowIntersection)
	return []byte(out)
}

// patchLayerCell adjusts one layer cell's visible attribute. Edited
// documents may have been re-serialized by the viewer, which reorders
// attributes and omits visible="1" on shown layers, so the attribute is
// replaced where present and inserted only when the layer must hide.
func patchLayerCell(doc, id string, visible bool) string {
	tagRe := regexp.MustCompile(`<mxCell\b[^>]*\bid="` + regexp.QuoteMeta(id) + `"[^>]*>`)
	want := `visible="1"`
	if !visible {
		want = `visible="0"`
	}
	return tagRe.ReplaceAllStringFunc(doc, func(tag string) string {
		if visibleAttrRe.MatchString(tag) {
			return visibleAttrRe.ReplaceAllString(tag, want)
		}
		if visible {
			return tag
		}
		idToken := `id="` + id + `"`
		return strings.Replace(tag, idToken, idToken+" "+want, 1)
	})
}
