// Package graph builds the frozen proximity topology between field nodes
package graph

import (
	"github.com/lixenwraith/nodefield/field"
	"github.com/lixenwraith/nodefield/vmath"
)

// SegmentStride is the float count per connection in a segment buffer (2 endpoints x 3 coords)
const SegmentStride = 6

// Connection is an undirected edge between two node indices, Start < End
// Distance is measured on the snapshot the graph was built from
type Connection struct {
	Start    int
	End      int
	Distance float64
}

// Build derives a degree-bounded proximity graph from the current node positions
//
// Pairs (i, j), i < j, are scanned in lexicographic order and accepted greedily when
// both endpoints are below maxDegree and within maxDistance. Earlier decisions are never
// revisited, so a node saturated early will not receive later, possibly closer, edges.
// The result is deterministic for identical input and O(N²)
func Build(nodes []field.Node, maxDistance float64, maxDegree int) []Connection {
	connections := make([]Connection, 0)
	if len(nodes) < 2 || maxDegree <= 0 {
		return connections
	}

	degree := make([]int, len(nodes))
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if degree[i] >= maxDegree || degree[j] >= maxDegree {
				continue
			}

			distance := vmath.V3FDist(nodes[i].Position, nodes[j].Position)
			if distance > maxDistance {
				continue
			}

			connections = append(connections, Connection{Start: i, End: j, Distance: distance})
			degree[i]++
			degree[j]++
		}
	}
	return connections
}

// Degrees returns the per-node incident edge count for nodeCount nodes
func Degrees(nodeCount int, connections []Connection) []int {
	degree := make([]int, nodeCount)
	for _, c := range connections {
		degree[c.Start]++
		degree[c.End]++
	}
	return degree
}

// WriteSegments fills dst with endpoint coordinates taken from live node positions
// Layout is [x1 y1 z1 x2 y2 z2] per connection, index-stable with connections
// dst must hold len(connections)*SegmentStride floats
func WriteSegments(dst []float32, nodes []field.Node, connections []Connection) {
	for i, c := range connections {
		start := nodes[c.Start].Position
		end := nodes[c.End].Position
		offset := i * SegmentStride

		dst[offset] = float32(start.X)
		dst[offset+1] = float32(start.Y)
		dst[offset+2] = float32(start.Z)
		dst[offset+3] = float32(end.X)
		dst[offset+4] = float32(end.Y)
		dst[offset+5] = float32(end.Z)
	}
}
