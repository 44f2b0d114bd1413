package render

import (
	"sort"

	"github.com/cktlab/drawdeck/internal/schematic"
)

// netSegments groups wire polylines by net name, dropping degenerate
// single-point wires.
func netSegments(wires []schematic.Wire) map[string][][]schematic.Point {
	byNet := make(map[string][][]schematic.Point)
	for _, w := range wires {
		if len(w.Points) < 2 {
			continue
		}
		byNet[w.Net] = append(byNet[w.Net], w.Points)
	}
	return byNet
}

// mergeChains joins segments of one net that share an endpoint where
// exactly two segments meet, producing longer polylines. Points where
// three or more segments meet stay split; those are junctions.
func mergeChains(segments [][]schematic.Point) [][]schematic.Point {
	degree := endpointDegree(segments)
	merged := make([][]schematic.Point, 0, len(segments))
	used := make([]bool, len(segments))

	for i := range segments {
		if used[i] {
			continue
		}
		used[i] = true
		chain := append([]schematic.Point(nil), segments[i]...)
		for {
			extended := false
			for j := range segments {
				if used[j] {
					continue
				}
				next, ok := join(chain, segments[j], degree)
				if ok {
					chain = next
					used[j] = true
					extended = true
				}
			}
			if !extended {
				break
			}
		}
		merged = append(merged, chain)
	}
	return merged
}

// join connects two polylines at a shared endpoint with degree two.
func join(a, b []schematic.Point, degree map[schematic.Point]int) ([]schematic.Point, bool) {
	aStart, aEnd := a[0], a[len(a)-1]
	bStart, bEnd := b[0], b[len(b)-1]
	switch {
	case aEnd == bStart && degree[aEnd] == 2:
		return append(a, b[1:]...), true
	case aEnd == bEnd && degree[aEnd] == 2:
		return append(a, reversed(b)[1:]...), true
	case aStart == bEnd && degree[aStart] == 2:
		return append(append([]schematic.Point(nil), b...), a[1:]...), true
	case aStart == bStart && degree[aStart] == 2:
		return append(reversed(b), a[1:]...), true
	}
	return nil, false
}

// endpointDegree counts how many segment endpoints coincide at each
// point.
func endpointDegree(segments [][]schematic.Point) map[schematic.Point]int {
	degree := make(map[schematic.Point]int)
	for _, seg := range segments {
		degree[seg[0]]++
		degree[seg[len(seg)-1]]++
	}
	return degree
}

// junctions finds the points of one net where three or more wire ends
// meet, or where a wire end lands on another wire's interior vertex.
// These get intersection dots.
func junctions(segments [][]schematic.Point) []schematic.Point {
	degree := endpointDegree(segments)
	interior := make(map[schematic.Point]bool)
	for _, seg := range segments {
		for _, p := range seg[1 : len(seg)-1] {
			interior[p] = true
		}
	}
	var out []schematic.Point
	for p, d := range degree {
		if d >= 3 || (d >= 1 && interior[p]) {
			out = append(out, p)
		}
	}
	// Deterministic output keeps rendered documents byte-stable.
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func reversed(pts []schematic.Point) []schematic.Point {
	out := make([]schematic.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
