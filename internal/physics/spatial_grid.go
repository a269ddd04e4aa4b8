package physics

import "math"

// maxNeighbors bounds the caller-owned neighbor buffer. It is a deliberate
// design choice that trades a (rare) dropped-neighbor tail for avoiding
// heap traffic in the hot path.
const maxNeighbors = 256

// gridCell is a versioned slot: a particle-index list plus the generation
// it was last touched in. Cells whose tag differs from the grid's current
// generation are treated as empty without being cleared.
type gridCell struct {
	indices    []int
	generation uint32
}

// SpatialGrid is a uniform cell hash over a rectangular domain. Cell edge
// equals the configured cell size (SPH smoothing length, or a tunable
// partition size in discrete-collision mode).
type SpatialGrid struct {
	originX, originY float64
	width, height    float64
	cellSize         float64
	cols, rows       int

	cells             []gridCell
	currentGeneration uint32
}

// NewSpatialGrid creates a grid over [origin, origin+(width,height)] with
// the given cell size. cols/rows are ceil(dimension/cellSize).
func NewSpatialGrid(origin Vec2, width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &SpatialGrid{
		originX:           origin.X,
		originY:           origin.Y,
		width:             width,
		height:            height,
		cellSize:          cellSize,
		cols:              cols,
		rows:              rows,
		cells:             make([]gridCell, cols*rows),
		currentGeneration: 1, // generation 0 is reserved for "never populated"
	}
	return g
}

// Cols and Rows report the grid's cell dimensions.
func (g *SpatialGrid) Cols() int { return g.cols }
func (g *SpatialGrid) Rows() int { return g.rows }

// cellCoords computes (cx, cy) for a position, clamping out-of-domain
// coordinates to the nearest edge cell rather than dropping the particle.
func (g *SpatialGrid) cellCoords(pos Vec2) (int, int) {
	cx := int(math.Floor((pos.X - g.originX) / g.cellSize))
	cy := int(math.Floor((pos.Y - g.originY) / g.cellSize))
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

func (g *SpatialGrid) cellIndex(cx, cy int) int {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return -1
	}
	return cy*g.cols + cx
}

// Rebuild increments the generation counter and re-inserts every particle
// index into its clamped cell. Cells touched this generation have their
// stale index list cleared lazily, on first touch, so rebuild costs
// O(touched cells + N) rather than O(total cells).
func (g *SpatialGrid) Rebuild(positions []Vec2) {
	g.currentGeneration++
	if g.currentGeneration == 0 {
		// Wrap-around: walk every cell once to re-zero tags, then resume at 1.
		for i := range g.cells {
			g.cells[i].generation = 0
			g.cells[i].indices = g.cells[i].indices[:0]
		}
		g.currentGeneration = 1
	}

	for i, pos := range positions {
		cx, cy := g.cellCoords(pos)
		idx := g.cellIndex(cx, cy)
		if idx < 0 {
			continue
		}
		cell := &g.cells[idx]
		if cell.generation != g.currentGeneration {
			cell.generation = g.currentGeneration
			cell.indices = cell.indices[:0]
		}
		cell.indices = append(cell.indices, i)
	}
}

// QueryNeighbors scans the 3x3 cell block around particle i and writes up
// to len(outBuffer) indices j != i whose squared distance to positions[i]
// is less than cellSize^2. Returns the count written; extra neighbors
// beyond the buffer capacity are silently dropped.
func (g *SpatialGrid) QueryNeighbors(i int, positions []Vec2, outBuffer []int) int {
	count := 0
	capacity := len(outBuffer)
	if capacity == 0 {
		return 0
	}

	pos := positions[i]
	cx, cy := g.cellCoords(pos)
	searchRadiusSq := g.cellSize * g.cellSize

	for dy := -1; dy <= 1 && count < capacity; dy++ {
		for dx := -1; dx <= 1 && count < capacity; dx++ {
			idx := g.cellIndex(cx+dx, cy+dy)
			if idx < 0 {
				continue
			}
			cell := &g.cells[idx]
			if cell.generation != g.currentGeneration {
				continue
			}
			for _, j := range cell.indices {
				if count >= capacity {
					break
				}
				if j == i {
					continue
				}
				if positions[i].DistSq(positions[j]) < searchRadiusSq {
					outBuffer[count] = j
					count++
				}
			}
		}
	}
	return count
}

// CellParticles returns the particle indices currently stored in the cell
// containing pos, or nil if that cell is stale or out of range. Intended
// for tests validating rebuild idempotence, not the hot path.
func (g *SpatialGrid) CellParticles(pos Vec2) []int {
	cx, cy := g.cellCoords(pos)
	idx := g.cellIndex(cx, cy)
	if idx < 0 {
		return nil
	}
	cell := &g.cells[idx]
	if cell.generation != g.currentGeneration {
		return nil
	}
	out := make([]int, len(cell.indices))
	copy(out, cell.indices)
	return out
}

// AllIndices returns the multiset union of every live cell's indices.
// After Rebuild(positions) this must equal {0..len(positions)-1}.
func (g *SpatialGrid) AllIndices() []int {
	var out []int
	for i := range g.cells {
		if g.cells[i].generation != g.currentGeneration {
			continue
		}
		out = append(out, g.cells[i].indices...)
	}
	return out
}

// NewNeighborBuffer allocates a caller-owned buffer sized to the documented
// neighbor cap.
func NewNeighborBuffer() []int {
	return make([]int, maxNeighbors)
}
