package swarm

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// NeighborProvider answers "who is near this agent" from tick-start
// snapshots. self is the caller's own index in the snapshot and is never
// returned.
type NeighborProvider interface {
	Neighbors(self int, pos r2.Vec, radius float64) []Neighbor
}

// Snapshot is a linear-scan NeighborProvider over a fixed slice.
type Snapshot []Neighbor

func (s Snapshot) Neighbors(self int, pos r2.Vec, radius float64) []Neighbor {
	var out []Neighbor
	for i, n := range s {
		if i == self {
			continue
		}
		if distance(n.Position, pos) <= radius {
			out = append(out, n)
		}
	}
	return out
}

type cellKey struct {
	x, y int
}

// Grid is a uniform spatial hash rebuilt once per tick.
type Grid struct {
	CellSize float64

	snaps []Neighbor
	cells map[cellKey][]int
	// lo and hi bound the occupied cells.
	lo, hi cellKey
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		CellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

// Rebuild replaces the grid contents. The slice is retained and must not
// be mutated until the next Rebuild.
func (g *Grid) Rebuild(snaps []Neighbor) {
	if g.cells == nil {
		g.cells = make(map[cellKey][]int)
	}
	for k, ids := range g.cells {
		g.cells[k] = ids[:0]
	}
	g.snaps = snaps
	for i, s := range snaps {
		k := g.key(s.Position)
		g.cells[k] = append(g.cells[k], i)
		if i == 0 {
			g.lo, g.hi = k, k
			continue
		}
		g.lo.x, g.hi.x = min(g.lo.x, k.x), max(g.hi.x, k.x)
		g.lo.y, g.hi.y = min(g.lo.y, k.y), max(g.hi.y, k.y)
	}
}

func (g *Grid) Neighbors(self int, pos r2.Vec, radius float64) []Neighbor {
	if g == nil || len(g.snaps) == 0 || !(radius > 0) {
		return nil
	}

	// Clamp the scan window to the occupied cells in float space, so an
	// unbounded radius never overflows a cell index.
	reach := math.Ceil(radius / g.CellSize)
	center := g.key(pos)
	loX := clampCell(float64(center.x)-reach, g.lo.x, g.hi.x)
	hiX := clampCell(float64(center.x)+reach, g.lo.x, g.hi.x)
	loY := clampCell(float64(center.y)-reach, g.lo.y, g.hi.y)
	hiY := clampCell(float64(center.y)+reach, g.lo.y, g.hi.y)

	// A window wider than the population costs more than scanning it.
	if (hiX-loX+1)*(hiY-loY+1) > len(g.snaps) {
		return Snapshot(g.snaps).Neighbors(self, pos, radius)
	}

	var out []Neighbor
	for x := loX; x <= hiX; x++ {
		for y := loY; y <= hiY; y++ {
			for _, i := range g.cells[cellKey{x, y}] {
				if i == self {
					continue
				}
				n := g.snaps[i]
				if distance(n.Position, pos) <= radius {
					out = append(out, n)
				}
			}
		}
	}
	return out
}

func clampCell(v float64, lo, hi int) int {
	if v <= float64(lo) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int(v)
}

func (g *Grid) key(p r2.Vec) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / g.CellSize)),
		y: int(math.Floor(p.Y / g.CellSize)),
	}
}
