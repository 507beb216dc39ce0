package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/neural"
)

func init() {
	config.MustInit("")
}

func testSensorParams() SensorParams {
	return SensorParamsFromConfig(config.Cfg())
}

func TestSensorInputsVector(t *testing.T) {
	inputs := SensorInputs{
		Energy:            0.8,
		FoodProximity:     0.1,
		FoodBearing:       -0.2,
		NeighborProximity: 0.3,
		NeighborSpeed:     0.4,
		NeighborBearing:   0.5,
		ObstacleProximity: 0.6,
		ObstacleBearing:   -0.7,
	}

	vec := inputs.Vector()
	want := neural.Inputs{0.8, 0.1, -0.2, 0.3, 0.4, 0.5, 0.6, -0.7}
	if vec != want {
		t.Errorf("Vector() = %v, want %v", vec, want)
	}
}

func TestSenseEmptyWorld(t *testing.T) {
	self := Self{ID: 1, X: 100, Y: 100, Heading: 0, Radius: 5, Energy: 50, MaxEnergy: 100}

	inputs := Sense(self, nil, nil, nil, testSensorParams())
	vec := inputs.Vector()

	if len(vec) != neural.NumInputs {
		t.Fatalf("vector length = %d, want %d", len(vec), neural.NumInputs)
	}
	if vec[0] != 0.5 {
		t.Errorf("energy ratio = %f, want 0.5", vec[0])
	}
	for i := 1; i < len(vec); i++ {
		if vec[i] != 0 {
			t.Errorf("channel %d = %f, want 0 with nothing to sense", i, vec[i])
		}
	}
}

func TestSenseIgnoresSelfAndDying(t *testing.T) {
	self := Self{ID: 1, X: 100, Y: 100, Radius: 5, Energy: 100, MaxEnergy: 100}
	peers := []Peer{
		{ID: 1, X: 100, Y: 100, Speed: 2},
		{ID: 2, X: 105, Y: 100, Speed: 2, Dying: true},
	}

	inputs := Sense(self, peers, nil, nil, testSensorParams())
	if inputs.NeighborProximity != 0 || inputs.NeighborSpeed != 0 || inputs.NeighborBearing != 0 {
		t.Errorf("neighbour channels = (%f, %f, %f), want zeros",
			inputs.NeighborProximity, inputs.NeighborSpeed, inputs.NeighborBearing)
	}
}

func TestSenseNearestNeighbor(t *testing.T) {
	p := testSensorParams()
	self := Self{ID: 1, X: 100, Y: 100, Heading: 0, Radius: 5, Energy: 100, MaxEnergy: 100}
	peers := []Peer{
		{ID: 2, X: 400, Y: 100, Speed: 2},
		{ID: 3, X: 100, Y: 130, Speed: p.MaxSpeed},
	}

	inputs := Sense(self, peers, nil, nil, p)

	if want := 1 - 30/p.ViewDistance; math.Abs(inputs.NeighborProximity-want) > 1e-9 {
		t.Errorf("neighbour proximity = %f, want %f", inputs.NeighborProximity, want)
	}
	if inputs.NeighborSpeed != 1 {
		t.Errorf("neighbour speed = %f, want 1", inputs.NeighborSpeed)
	}
	if math.Abs(inputs.NeighborBearing-0.5) > 1e-9 {
		t.Errorf("neighbour bearing = %f, want 0.5 (90 degrees)", inputs.NeighborBearing)
	}
}

func TestSenseFoodAndObstacle(t *testing.T) {
	p := testSensorParams()
	self := Self{ID: 1, X: 100, Y: 100, Heading: 90, Radius: 5, Energy: 100, MaxEnergy: 100}
	foods := []components.Food{
		{X: 100, Y: 200, Radius: 3}, // straight ahead
		{X: 900, Y: 600, Radius: 3},
	}
	obstacles := []components.Obstacle{
		{X: 150, Y: 90, W: 20, H: 20}, // to the side
	}

	inputs := Sense(self, nil, foods, obstacles, p)

	if want := 1 - 100/p.ViewDistance; math.Abs(inputs.FoodProximity-want) > 1e-9 {
		t.Errorf("food proximity = %f, want %f", inputs.FoodProximity, want)
	}
	if math.Abs(inputs.FoodBearing) > 1e-9 {
		t.Errorf("food bearing = %f, want 0 for food dead ahead", inputs.FoodBearing)
	}
	// Edge distance is 50 - radius 5 = 45.
	if want := 1 - 45/p.ViewDistance; math.Abs(inputs.ObstacleProximity-want) > 1e-9 {
		t.Errorf("obstacle proximity = %f, want %f", inputs.ObstacleProximity, want)
	}
	if inputs.ObstacleBearing >= 0 {
		t.Errorf("obstacle bearing = %f, want negative for a target on the right", inputs.ObstacleBearing)
	}
}

func TestSenseBeyondView(t *testing.T) {
	p := testSensorParams()
	self := Self{ID: 1, X: 0, Y: 0, Radius: 5, Energy: 100, MaxEnergy: 100}
	foods := []components.Food{{X: p.ViewDistance * 3, Y: 0, Radius: 3}}

	inputs := Sense(self, nil, foods, nil, p)
	if inputs.FoodProximity != 0 {
		t.Errorf("food proximity = %f, want 0 beyond view distance", inputs.FoodProximity)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		dx, dy  float64
		want    float64
	}{
		{"ahead", 0, 10, 0, 0},
		{"behind", 0, -10, 0, 1},
		{"positive quarter", 0, 0, 10, 0.5},
		{"negative quarter", 0, 0, -10, -0.5},
		{"rotated heading", 90, 0, 10, 0},
		{"zero vector", 45, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.heading, tt.dx, tt.dy)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Bearing(%v, %v, %v) = %v, want %v", tt.heading, tt.dx, tt.dy, got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("Bearing out of range: %v", got)
			}
		})
	}
}

func TestProximity(t *testing.T) {
	tests := []struct {
		d, view, want float64
	}{
		{0, 300, 1},
		{150, 300, 0.5},
		{300, 300, 0},
		{1000, 300, 0},
		{-5, 300, 1},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Proximity(tt.d, tt.view); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Proximity(%v, %v) = %v, want %v", tt.d, tt.view, got, tt.want)
		}
	}
}

func BenchmarkSense(b *testing.B) {
	p := testSensorParams()
	self := Self{ID: 0, X: 500, Y: 350, Heading: 30, Radius: 5, Energy: 60, MaxEnergy: 100}
	peers := make([]Peer, 50)
	for i := range peers {
		peers[i] = Peer{ID: uint32(i + 1), X: float64(i * 20), Y: float64(i * 13), Speed: 2}
	}
	foods := make([]components.Food, 250)
	for i := range foods {
		foods[i] = components.Food{X: float64(i*37) / 10, Y: float64(i*29) / 10, Radius: 3}
	}
	obstacles := []components.Obstacle{{X: 100, Y: 100, W: 25, H: 25}, {X: 700, Y: 400, W: 25, H: 25}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sense(self, peers, foods, obstacles, p)
	}
}

func TestNearestTargets(t *testing.T) {
	if _, ok := NearestFood(0, 0, nil); ok {
		t.Error("NearestFood found food in an empty list")
	}
	if _, ok := NearestObstacle(0, 0, 5, nil); ok {
		t.Error("NearestObstacle found an obstacle in an empty list")
	}

	foods := []components.Food{{X: 50, Y: 0}, {X: 0, Y: 30}, {X: 100, Y: 100}}
	food, ok := NearestFood(0, 0, foods)
	if !ok || food.X != 0 || food.Y != 30 || food.Dist != 30 {
		t.Errorf("NearestFood = %+v, %v, want (0, 30) at 30", food, ok)
	}

	obstacles := []components.Obstacle{
		{X: 200, Y: -10, W: 20, H: 20},
		{X: 2, Y: -10, W: 20, H: 20}, // overlapping the body
	}
	obs, ok := NearestObstacle(0, 0, 5, obstacles)
	if !ok || obs.X != 12 || obs.Y != 0 {
		t.Errorf("NearestObstacle = %+v, %v, want centre (12, 0)", obs, ok)
	}
	if obs.Dist != 0 {
		t.Errorf("overlapping obstacle distance = %f, want 0", obs.Dist)
	}
}
