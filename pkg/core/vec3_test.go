package core

import (
	"errors"
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Lerp start", a.Lerp(b, 0), a},
		{"Lerp end", a.Lerp(b, 1), b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if d := a.Dot(b); d != 12 {
		t.Errorf("Expected dot 12, got %f", d)
	}
	if l := NewVec3(3, 4, 0).Length(); l != 5 {
		t.Errorf("Expected length 5, got %f", l)
	}
	if l := NewVec3(3, 4, 0).LengthSquared(); l != 25 {
		t.Errorf("Expected squared length 25, got %f", l)
	}
}

func TestUnitVector_HasUnitLength(t *testing.T) {
	vectors := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(3, 4, 12),
		NewVec3(-1e-3, 2e-4, 5e-5),
		NewVec3(1e6, -1e6, 3e5),
		NewVec3(0.1, 0.2, 0.3),
	}
	for _, v := range vectors {
		u := UnitVector(v)
		if math.Abs(u.Length()-1.0) > 1e-9 {
			t.Errorf("UnitVector(%v) has length %.12f", v, u.Length())
		}
	}

	if zero := UnitVector(Vec3{}); !zero.Equals(Vec3{}) {
		t.Errorf("Zero vector should normalize to zero, got %v", zero)
	}
}

func TestReflect(t *testing.T) {
	// 45 degrees onto a floor bounces back up
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	r := Reflect(v, n)
	if !r.Equals(NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1,1,0), got %v", r)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight through", func(t *testing.T) {
		r := Refract(NewVec3(0, -1, 0), n, 1.0/1.5)
		if r.Subtract(NewVec3(0, -1, 0)).Length() > 1e-12 {
			t.Errorf("Expected (0,-1,0), got %v", r)
		}
	})

	t.Run("matched index keeps direction", func(t *testing.T) {
		in := NewVec3(1, -1, 0).Normalize()
		r := Refract(in, n, 1.0)
		if r.Subtract(in).Length() > 1e-12 {
			t.Errorf("Expected %v, got %v", in, r)
		}
	})

	t.Run("snell's law holds", func(t *testing.T) {
		eta := 1.0 / 1.5
		in := NewVec3(math.Sin(0.5), -math.Cos(0.5), 0)
		r := Refract(in, n, eta)
		sinOut := r.Normalize().X
		if math.Abs(sinOut-eta*math.Sin(0.5)) > 1e-12 {
			t.Errorf("Expected sin(out)=%f, got %f", eta*math.Sin(0.5), sinOut)
		}
		if math.Abs(r.Length()-1.0) > 1e-12 {
			t.Errorf("Refracted unit vector should stay unit, got length %f", r.Length())
		}
	})
}

func TestVec3_ClampAndGamma(t *testing.T) {
	c := NewVec3(-0.5, 0.25, 2).Clamp(0, 0.999)
	if !c.Equals(NewVec3(0, 0.25, 0.999)) {
		t.Errorf("Clamp failed: %v", c)
	}

	g := NewVec3(0.25, 1, 0).GammaCorrect(2.0)
	if !g.Equals(NewVec3(0.5, 1, 0)) {
		t.Errorf("Gamma 2 should be sqrt, got %v", g)
	}
}

func TestRay_AtAndValidate(t *testing.T) {
	r := NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1))
	if p := r.At(4); !p.Equals(NewVec3(0, 0, -1)) {
		t.Errorf("Expected (0,0,-1), got %v", p)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	zero := NewRay(NewVec3(1, 2, 3), Vec3{})
	if err := zero.Validate(); !errors.Is(err, ErrZeroDirection) {
		t.Errorf("Expected ErrZeroDirection, got %v", err)
	}

	nan := NewRay(NewVec3(math.NaN(), 0, 0), NewVec3(0, 0, 1))
	if err := nan.Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}
}
