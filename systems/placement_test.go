package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
)

func TestEatConsumesAllOverlapping(t *testing.T) {
	tc := newTestCreature(100, 100, 0, 90)
	foods := []components.Food{
		{X: 102, Y: 100, Radius: 3},
		{X: 300, Y: 300, Radius: 3},
		{X: 100, Y: 106, Radius: 3},
	}

	remaining, eaten := Eat(tc.view(), foods, 40)
	if eaten != 2 {
		t.Errorf("eaten = %d, want 2", eaten)
	}
	if len(remaining) != 1 || remaining[0].X != 300 {
		t.Errorf("remaining = %v, want only the far pellet", remaining)
	}
	if tc.energy.Value != tc.energy.Max {
		t.Errorf("energy = %f, want capped at %f", tc.energy.Value, tc.energy.Max)
	}
	if tc.life.FoodEaten != 2 {
		t.Errorf("food eaten = %d, want 2", tc.life.FoodEaten)
	}
}

func TestEatNothing(t *testing.T) {
	tc := newTestCreature(100, 100, 0, 50)
	foods := []components.Food{{X: 200, Y: 200, Radius: 3}}

	remaining, eaten := Eat(tc.view(), foods, 40)
	if eaten != 0 || len(remaining) != 1 || tc.energy.Value != 50 {
		t.Errorf("eaten %d, remaining %d, energy %f", eaten, len(remaining), tc.energy.Value)
	}
}

func TestSafePosition(t *testing.T) {
	p := PlacerFromConfig(config.Cfg())
	rng := rand.New(rand.NewSource(42))
	obstacles := []components.Obstacle{{X: 400, Y: 300, W: 25, H: 25}}

	for i := 0; i < 200; i++ {
		x, y, ok := p.SafePosition(rng, 5, obstacles)
		if !ok {
			t.Fatal("failed to find a safe position in a mostly empty world")
		}
		if !p.IsSafe(x, y, 5, obstacles) || !p.inBounds(x, y, 5) {
			t.Fatalf("position (%f, %f) is not safe", x, y)
		}
	}
}

func TestSafePositionFallback(t *testing.T) {
	p := Placer{W: 100, H: 100, Clearance: 10, MaxAttempts: 20}
	rng := rand.New(rand.NewSource(42))
	// One obstacle covering the whole world.
	obstacles := []components.Obstacle{{X: 0, Y: 0, W: 100, H: 100}}

	x, y, ok := p.SafePosition(rng, 5, obstacles)
	if ok {
		t.Error("expected fallback when no safe point exists")
	}
	if !p.inBounds(x, y, 5) {
		t.Errorf("fallback (%f, %f) is outside the world", x, y)
	}
}

func TestOffspringPositionNearParent(t *testing.T) {
	p := PlacerFromConfig(config.Cfg())
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		x, y, ok := p.OffspringPosition(rng, 500, 350, 5, nil)
		if !ok {
			t.Fatal("offspring placement failed with no obstacles")
		}
		if x < 475 || x > 525 || y < 325 || y > 375 {
			t.Errorf("offspring at (%f, %f), want within five radii of parent", x, y)
		}
	}
}

func TestOffspringPositionAvoidsObstacle(t *testing.T) {
	p := PlacerFromConfig(config.Cfg())
	rng := rand.New(rand.NewSource(42))
	// Parent sits right next to an obstacle, so nearby spots are rejected.
	obstacles := []components.Obstacle{{X: 490, Y: 340, W: 25, H: 25}}

	for i := 0; i < 100; i++ {
		x, y, ok := p.OffspringPosition(rng, 500, 350, 5, obstacles)
		if ok && !p.IsSafe(x, y, 5, obstacles) {
			t.Fatalf("offspring at (%f, %f) reported safe but is not", x, y)
		}
	}
}

func TestLayoutObstacles(t *testing.T) {
	p := PlacerFromConfig(config.Cfg())
	rng := rand.New(rand.NewSource(42))
	avoid := []Circle{{X: 500, Y: 350, R: 5}, {X: 100, Y: 100, R: 5}}

	obstacles, ok := p.LayoutObstacles(rng, 5, 25, avoid)
	if !ok {
		t.Fatal("layout fell back in a mostly empty world")
	}
	if len(obstacles) != 5 {
		t.Fatalf("got %d obstacles, want 5", len(obstacles))
	}
	for i, o := range obstacles {
		if o.X < 0 || o.Y < 0 || o.X+o.W > p.W || o.Y+o.H > p.H {
			t.Errorf("obstacle %d %+v leaves the world", i, o)
		}
		for j := i + 1; j < len(obstacles); j++ {
			if RectsOverlap(ObstacleRect(o), ObstacleRect(obstacles[j])) {
				t.Errorf("obstacles %d and %d overlap", i, j)
			}
		}
		for _, c := range avoid {
			if CircleIntersectsRect(c, ObstacleRect(o)) {
				t.Errorf("obstacle %d covers a creature at (%f, %f)", i, c.X, c.Y)
			}
		}
	}
}

func TestGeometry(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 10, H: 10}

	if d := r.Distance(15, 15); d != 0 {
		t.Errorf("distance inside = %f, want 0", d)
	}
	if d := r.Distance(25, 15); d != 5 {
		t.Errorf("distance right = %f, want 5", d)
	}
	if !CircleIntersectsRect(Circle{X: 24, Y: 15, R: 5}, r) {
		t.Error("circle 4 from edge with radius 5 should intersect")
	}
	if CircleIntersectsRect(Circle{X: 25, Y: 15, R: 5}, r) {
		t.Error("touching circle should not count as intersecting")
	}
	if !CirclesOverlap(Circle{X: 0, Y: 0, R: 3}, Circle{X: 5, Y: 0, R: 3}) {
		t.Error("circles 5 apart with radii 3 should overlap")
	}
	if RectsOverlap(r, Rect{X: 20, Y: 10, W: 5, H: 5}) {
		t.Error("edge-adjacent rects should not overlap")
	}
	if cx, cy := r.Center(); cx != 15 || cy != 15 {
		t.Errorf("center = (%f, %f), want (15, 15)", cx, cy)
	}
}
