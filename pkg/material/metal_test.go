package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	// Two unrelated seeds must give the same answer without fuzz
	for _, seed := range []int64{1, 99} {
		scatter, didScatter := metal.Scatter(rayIn, hit, rand.New(rand.NewSource(seed)))
		if !didScatter {
			t.Fatal("Metal should scatter")
		}

		expected := core.Reflect(core.UnitVector(rayIn.Direction), hit.Normal)
		if !scatter.Scattered.Direction.Equals(expected) {
			t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Errorf("Scattered origin should be the hit point, got %v", scatter.Scattered.Origin)
		}
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	directions := make([]core.Vec3, 10)
	for i := range directions {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if directions[i].Subtract(directions[0]).Length() > 1e-10 {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}

func TestMetal_ScatterAbsorption(t *testing.T) {
	// Grazing incidence with maximum fuzz regularly dips below the surface
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	random := rand.New(rand.NewSource(123))

	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		if didScatter && scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Scattered ray below surface was not absorbed: %v", scatter.Scattered.Direction)
		}
		if !didScatter {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}
