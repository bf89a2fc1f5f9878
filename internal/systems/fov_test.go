package systems

import (
	"testing"

	"umbrella-rogue/internal/domain"
)

var algorithms = []FOVAlgorithm{FOVBasic, FOVShadow}

func TestComputeFOV_RadiusBound(t *testing.T) {
	w := createTestWorld(21, 21)
	origin := domain.Position{X: 10, Y: 10}

	for _, algo := range algorithms {
		t.Run(string(algo), func(t *testing.T) {
			visible := ComputeFOV(w.Map, origin, 5, algo, true)

			tests := []struct {
				pos  domain.Position
				want bool
			}{
				{origin, true},
				{domain.Position{X: 15, Y: 10}, true},
				{domain.Position{X: 10, Y: 5}, true},
				{domain.Position{X: 13, Y: 13}, true},
				{domain.Position{X: 16, Y: 10}, false},
				{domain.Position{X: 14, Y: 14}, false},
			}
			for _, tt := range tests {
				if got := visible.Has(tt.pos); got != tt.want {
					t.Errorf("visible(%v) = %v, want %v", tt.pos, got, tt.want)
				}
			}
		})
	}
}

func TestComputeFOV_WallsOcclude(t *testing.T) {
	w := createTestWorld(21, 21)
	for y := 0; y < 21; y++ {
		placeWall(w, 12, y)
	}
	origin := domain.Position{X: 10, Y: 10}
	wall := domain.Position{X: 12, Y: 10}

	for _, algo := range algorithms {
		t.Run(string(algo), func(t *testing.T) {
			lit := ComputeFOV(w.Map, origin, 8, algo, true)
			if !lit.Has(domain.Position{X: 11, Y: 10}) {
				t.Error("floor in front of the wall must be visible")
			}
			if !lit.Has(wall) {
				t.Error("wall must be lit when light_walls is on")
			}
			for x := 13; x < 21; x++ {
				if lit.Has(domain.Position{X: x, Y: 10}) {
					t.Errorf("tile (%d,10) behind the wall must not be visible", x)
				}
			}

			dark := ComputeFOV(w.Map, origin, 8, algo, false)
			if dark.Has(wall) {
				t.Error("wall must not be in the set when light_walls is off")
			}
		})
	}
}

func TestComputeFOV_MonstersDoNotOcclude(t *testing.T) {
	w := createTestWorld(11, 11)
	addMonster(w, "орк", domain.Position{X: 6, Y: 5}, 10, 0, 3)

	visible := ComputeFOV(w.Map, domain.Position{X: 5, Y: 5}, 5, FOVShadow, true)
	if !visible.Has(domain.Position{X: 8, Y: 5}) {
		t.Error("entities must not block sight")
	}
}

func TestComputeFOV_NeverOutOfBounds(t *testing.T) {
	w := createTestWorld(6, 6)
	for _, algo := range algorithms {
		visible := ComputeFOV(w.Map, domain.Position{X: 0, Y: 0}, 10, algo, true)
		visible.Each(func(p domain.Position) {
			if !w.Map.InBounds(p.X, p.Y) {
				t.Errorf("%s: out-of-bounds tile %v in visible set", algo, p)
			}
		})
	}
}

func TestVisibility_DirtyFlagAndExploredMemory(t *testing.T) {
	w := createTestWorld(40, 10)
	vis := NewVisibility(testFOVConfig())

	start := domain.Position{X: 3, Y: 5}
	if !vis.Recompute(w.Map, start) {
		t.Fatal("new visibility must start dirty")
	}
	if vis.Recompute(w.Map, start) {
		t.Fatal("clean visibility must not recompute")
	}
	if got := vis.TileState(w.Map, 3, 5); got != TileVisible {
		t.Errorf("viewer tile state = %v, want visible", got)
	}
	if got := vis.TileState(w.Map, 35, 5); got != TileUnknown {
		t.Errorf("far tile state = %v, want unknown", got)
	}

	vis.MarkDirty()
	vis.Recompute(w.Map, domain.Position{X: 35, Y: 5})

	if !w.Map.Tiles[5][3].Explored {
		t.Fatal("explored must never revert")
	}
	if got := vis.TileState(w.Map, 3, 5); got != TileRemembered {
		t.Errorf("old tile state = %v, want remembered", got)
	}
	if got := vis.TileState(w.Map, 35, 5); got != TileVisible {
		t.Errorf("new viewer tile state = %v, want visible", got)
	}
}
