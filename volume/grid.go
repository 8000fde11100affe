package volume

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a grid cell
type CellKey struct {
	X, Y, Z int
}

// Pair is two indices of bounds whose boxes overlap, A < B
type Pair struct {
	A, B int
}

// Grid is a uniform hashed grid over world bounds, used to find overlapping
// volumes without testing every pair
type Grid struct {
	cellSize float64
	cells    [][]int
	cellMask int
}

// NewGrid creates a grid of cellSize wide cells hashed into numCells buckets,
// rounded up to a power of two
func NewGrid(cellSize float64, numCells int) *Grid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([][]int, numCells)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

// MaxCellsPerAxis bounds how many cells the largest bounds span on one axis
const MaxCellsPerAxis = 16

// NewGridFor creates a grid sized for bounds: cells are as wide as the mean
// bounds extent, but never so small that the largest bounds cover more than
// MaxCellsPerAxis cells per axis.
func NewGridFor(bounds []AABB) *Grid {
	var total, largest float64
	for _, b := range bounds {
		size := b.Size()
		extent := max(size.X(), size.Y(), size.Z())
		total += extent
		largest = max(largest, extent)
	}

	cellSize := 1.0
	if len(bounds) > 0 {
		cellSize = max(total/float64(len(bounds)), largest/MaxCellsPerAxis)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}

	return NewGrid(cellSize, 4*len(bounds))
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds index to every cell the bounds cover
func (g *Grid) Insert(index int, bounds AABB) {
	g.visit(bounds, func(cell int) {
		g.cells[cell] = append(g.cells[cell], index)
	})
}

// Clear empties every cell, keeping their capacity
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// FindOverlaps inserts every bounds and returns the overlapping pairs, ordered
// by first then second index
func (g *Grid) FindOverlaps(bounds []AABB) []Pair {
	g.Clear()
	for i, b := range bounds {
		g.Insert(i, b)
	}

	pairs := make([]Pair, 0, len(bounds)/2)
	seen := make([]bool, len(bounds))
	for i, a := range bounds {
		clear(seen)
		var found []int
		g.visit(a, func(cell int) {
			for _, other := range g.cells[cell] {
				// deterministic order, and each pair once
				if other <= i || seen[other] {
					continue
				}
				seen[other] = true
				if a.Overlaps(bounds[other]) {
					found = append(found, other)
				}
			}
		})
		slices.Sort(found)
		for _, other := range found {
			pairs = append(pairs, Pair{A: i, B: other})
		}
	}

	return pairs
}

func (g *Grid) visit(bounds AABB, fn func(cell int)) {
	minCell := g.worldToCell(bounds.Min)
	maxCell := g.worldToCell(bounds.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				fn(g.hashCell(CellKey{x, y, z}))
			}
		}
	}
}

func (g *Grid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / g.cellSize)),
		Y: int(math.Floor(pos.Y() / g.cellSize)),
		Z: int(math.Floor(pos.Z() / g.cellSize)),
	}
}

func (g *Grid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & g.cellMask
}
