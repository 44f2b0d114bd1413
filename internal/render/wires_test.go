package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cktlab/drawdeck/internal/schematic"
)

func seg(pts ...schematic.Point) []schematic.Point { return pts }

func TestMergeChainsJoinsSharedEndpoints(t *testing.T) {
	segments := [][]schematic.Point{
		seg(schematic.Point{0, 0}, schematic.Point{1, 0}),
		seg(schematic.Point{1, 0}, schematic.Point{1, 1}),
		seg(schematic.Point{1, 1}, schematic.Point{2, 1}),
	}
	merged := mergeChains(segments)
	require.Len(t, merged, 1)
	require.Equal(t, seg(
		schematic.Point{0, 0}, schematic.Point{1, 0},
		schematic.Point{1, 1}, schematic.Point{2, 1},
	), merged[0])
}

func TestMergeChainsHandlesReversedSegments(t *testing.T) {
	segments := [][]schematic.Point{
		seg(schematic.Point{1, 0}, schematic.Point{0, 0}),
		seg(schematic.Point{1, 0}, schematic.Point{2, 0}),
	}
	merged := mergeChains(segments)
	require.Len(t, merged, 1)
	require.Len(t, merged[0], 3)
}

func TestMergeChainsKeepsJunctionsSplit(t *testing.T) {
	// Three segments meeting at (1,0): a T junction, nothing merges
	// through it.
	segments := [][]schematic.Point{
		seg(schematic.Point{0, 0}, schematic.Point{1, 0}),
		seg(schematic.Point{1, 0}, schematic.Point{2, 0}),
		seg(schematic.Point{1, 0}, schematic.Point{1, 1}),
	}
	merged := mergeChains(segments)
	require.Len(t, merged, 3)
}

func TestJunctions(t *testing.T) {
	tests := []struct {
		name     string
		segments [][]schematic.Point
		want     []schematic.Point
	}{
		{
			name: "straight chain has none",
			segments: [][]schematic.Point{
				seg(schematic.Point{0, 0}, schematic.Point{1, 0}),
				seg(schematic.Point{1, 0}, schematic.Point{2, 0}),
			},
			want: nil,
		},
		{
			name: "three-way endpoint meeting",
			segments: [][]schematic.Point{
				seg(schematic.Point{0, 0}, schematic.Point{1, 0}),
				seg(schematic.Point{1, 0}, schematic.Point{2, 0}),
				seg(schematic.Point{1, 0}, schematic.Point{1, 1}),
			},
			want: []schematic.Point{{1, 0}},
		},
		{
			name: "endpoint on interior vertex",
			segments: [][]schematic.Point{
				seg(schematic.Point{0, 0}, schematic.Point{1, 0}, schematic.Point{2, 0}),
				seg(schematic.Point{1, 0}, schematic.Point{1, 1}),
			},
			want: []schematic.Point{{1, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, junctions(tt.segments))
		})
	}
}

func TestNetSegmentsDropsDegenerateWires(t *testing.T) {
	byNet := netSegments([]schematic.Wire{
		{Net: "vdd", Points: []schematic.Point{{0, 0}, {1, 0}}},
		{Net: "vdd", Points: []schematic.Point{{5, 5}}},
		{Net: "gnd", Points: []schematic.Point{{0, 1}, {1, 1}}},
	})
	require.Len(t, byNet["vdd"], 1)
	require.Len(t, byNet["gnd"], 1)
}

func TestOrientTransforms(t *testing.T) {
	p := schematic.Point{2, 1}
	tests := []struct {
		code string
		want schematic.Point
	}{
		{"R0", schematic.Point{2, 1}},
		{"", schematic.Point{2, 1}},
		{"R90", schematic.Point{-1, 2}},
		{"R180", schematic.Point{-2, -1}},
		{"R270", schematic.Point{1, -2}},
		{"MY", schematic.Point{-2, 1}},
		{"MX", schematic.Point{2, -1}},
		{"MYR90", schematic.Point{-1, -2}},
		{"MXR90", schematic.Point{1, 2}},
	}
	for _, tt := range tests {
		t.Run("orient "+tt.code, func(t *testing.T) {
			got, err := orient(tt.code, p)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := orient("R45", p)
	require.Error(t, err)
}
