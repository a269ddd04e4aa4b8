package physics

import (
	"sort"
	"testing"
)

func TestRebuildCoversEveryIndexExactlyOnce(t *testing.T) {
	positions := []Vec2{
		{X: 0, Y: 0}, {X: 0.01, Y: 0.01}, {X: 0.5, Y: 0.5},
		{X: -0.3, Y: 0.2}, {X: 0.9, Y: -0.9},
	}
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 0.08)
	g.Rebuild(positions)

	got := g.AllIndices()
	sort.Ints(got)
	want := []int{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRebuildIdempotentPerCell(t *testing.T) {
	positions := []Vec2{{X: 0, Y: 0}, {X: 0.01, Y: 0}, {X: 0.9, Y: 0.9}}
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 0.08)

	g.Rebuild(positions)
	first := g.CellParticles(Vec2{X: 0, Y: 0})

	for i := 0; i < 5; i++ {
		g.Rebuild(positions)
	}
	last := g.CellParticles(Vec2{X: 0, Y: 0})

	sort.Ints(first)
	sort.Ints(last)
	if len(first) != len(last) {
		t.Fatalf("expected stable cell contents, got %v then %v", first, last)
	}
	for i := range first {
		if first[i] != last[i] {
			t.Fatalf("expected stable cell contents, got %v then %v", first, last)
		}
	}
}

func TestOutOfBoundsClampsToEdgeCell(t *testing.T) {
	g := NewSpatialGrid(Vec2{X: 0, Y: 0}, 1, 1, 0.1)
	positions := []Vec2{{X: 100, Y: 100}, {X: -100, Y: -100}}
	g.Rebuild(positions)

	got := g.AllIndices()
	if len(got) != 2 {
		t.Fatalf("expected clamped particles to still be tracked, got %v", got)
	}
}

func TestQueryNeighborsExcludesSelfAndDistantParticles(t *testing.T) {
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 0.1)
	positions := []Vec2{
		{X: 0, Y: 0},
		{X: 0.01, Y: 0}, // within cellSize
		{X: 0.5, Y: 0.5}, // far away
	}
	g.Rebuild(positions)

	buf := make([]int, 256)
	n := g.QueryNeighbors(0, positions, buf)
	found := buf[:n]

	if len(found) != 1 || found[0] != 1 {
		t.Errorf("expected neighbor [1], got %v", found)
	}
}

func TestQueryNeighborsRespectsBufferCap(t *testing.T) {
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 1.0)
	positions := make([]Vec2, 20)
	for i := range positions {
		positions[i] = Vec2{X: 0, Y: 0}
	}
	g.Rebuild(positions)

	buf := make([]int, 5)
	n := g.QueryNeighbors(0, positions, buf)
	if n != 5 {
		t.Errorf("expected query to saturate at buffer cap 5, got %d", n)
	}
}

func TestQueryNeighborsNeverReturnsSelf(t *testing.T) {
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 0.1)
	positions := []Vec2{{X: 0, Y: 0}}
	g.Rebuild(positions)

	buf := make([]int, 256)
	n := g.QueryNeighbors(0, positions, buf)
	if n != 0 {
		t.Errorf("expected single particle to have no neighbors, got %v", buf[:n])
	}
}

func TestGenerationWrapAroundReZeroesCells(t *testing.T) {
	g := NewSpatialGrid(Vec2{X: -1, Y: -1}, 2, 2, 0.1)
	positions := []Vec2{{X: 0, Y: 0}}
	g.currentGeneration = 4294967294 // math.MaxUint32 - 1
	g.Rebuild(positions) // generation becomes MaxUint32
	g.Rebuild(positions) // wraps to 0 then resets to 1

	if g.currentGeneration != 1 {
		t.Fatalf("expected generation to reset to 1 after wrap, got %d", g.currentGeneration)
	}
	got := g.AllIndices()
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected particle tracked after wrap, got %v", got)
	}
}
