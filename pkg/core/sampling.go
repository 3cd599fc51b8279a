package core

import (
	"math"
	"math/rand"
)

// RandomRange returns a uniform value in [lo, hi)
func RandomRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [lo, hi)
func RandomVec3(random *rand.Rand, lo, hi float64) Vec3 {
	return Vec3{
		X: RandomRange(random, lo, hi),
		Y: RandomRange(random, lo, hi),
		Z: RandomRange(random, lo, hi),
	}
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3(random, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector samples a uniform direction on the unit sphere without rejection
func RandomUnitVector(random *rand.Rand) Vec3 {
	a := 2.0 * math.Pi * random.Float64()
	z := RandomRange(random, -1, 1)
	r := math.Sqrt(1.0 - z*z)
	return Vec3{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		p := NewVec3(RandomRange(random, -1, 1), RandomRange(random, -1, 1), 0)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}
