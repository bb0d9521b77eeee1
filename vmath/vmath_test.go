package vmath

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		name                    string
		current, target, factor float64
		want                    float64
	}{
		{"stay", 10, 20, 0, 10},
		{"snap", 10, 20, 1, 20},
		{"half", 10, 20, 0.5, 15},
		{"damping", 0, 100, 0.05, 5},
		{"negative direction", 60, 15, 0.05, 57.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp(tt.current, tt.target, tt.factor)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.factor, got, tt.want)
			}
		})
	}
}

func TestV3FLerpConverges(t *testing.T) {
	cur := Vec3F{}
	goal := Vec3F{X: 30, Y: -2, Z: 7}
	for i := 0; i < 1000; i++ {
		cur = V3FLerp(cur, goal, 0.05)
	}
	if !V3FNearlyEqual(cur, goal, 1e-9) {
		t.Errorf("expected convergence to %v, got %v", goal, cur)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{TwoPi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleDiff(t *testing.T) {
	if d := AngleDiff(0.1, TwoPi-0.1); math.Abs(d-0.2) > 1e-12 {
		t.Errorf("AngleDiff across wrap = %v, want 0.2", d)
	}
	if d := AngleDiff(TwoPi-0.1, 0.1); math.Abs(d+0.2) > 1e-12 {
		t.Errorf("AngleDiff reverse = %v, want -0.2", d)
	}
}

func TestRotateY(t *testing.T) {
	got := V3FRotateY(Vec3F{X: 1}, math.Pi/2)
	want := Vec3F{Z: -1}
	if !V3FNearlyEqual(got, want, 1e-12) {
		t.Errorf("RotateY(+X, π/2) = %v, want %v", got, want)
	}

	got = V3FRotateY(Vec3F{X: -1}, math.Pi/2)
	want = Vec3F{Z: 1}
	if !V3FNearlyEqual(got, want, 1e-12) {
		t.Errorf("RotateY(-X, π/2) = %v, want %v", got, want)
	}
}

func TestCrossAndNormalize(t *testing.T) {
	c := V3FCross(Vec3F{X: 1}, Vec3F{Y: 1})
	if !V3FNearlyEqual(c, Vec3F{Z: 1}, 1e-12) {
		t.Errorf("X cross Y = %v, want +Z", c)
	}

	n := V3FNormalize(Vec3F{X: 3, Y: 4})
	if math.Abs(V3FMag(n)-1) > 1e-12 {
		t.Errorf("normalized magnitude = %v, want 1", V3FMag(n))
	}

	if z := V3FNormalize(Vec3F{}); z != (Vec3F{}) {
		t.Errorf("normalize zero = %v, want zero", z)
	}
}

func TestClampAndDegrees(t *testing.T) {
	if Clamp(60, 0.1, 50) != 50 || Clamp(0, 0.1, 50) != 0.1 || Clamp(5, 0.1, 50) != 5 {
		t.Error("Clamp out of range handling wrong")
	}
	if math.Abs(RadToDeg(DegToRad(51.6))-51.6) > 1e-12 {
		t.Error("degree round trip drifted")
	}
}
