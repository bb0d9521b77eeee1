package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/vmath"
)

func newDefault(t *testing.T) *Scene {
	t.Helper()
	s, err := New(DefaultSpecs())
	if err != nil {
		t.Fatalf("New(DefaultSpecs()) failed: %v", err)
	}
	return s
}

func TestDefaultSceneInitialPose(t *testing.T) {
	s := newDefault(t)

	if got := s.WorldPosition(kinematics.RoleSun); got != (vmath.Vec3F{}) {
		t.Errorf("sun at %v, want origin", got)
	}
	if got := s.WorldPosition(kinematics.RolePlanet); got != (vmath.Vec3F{X: DefaultPlanetOrbit}) {
		t.Errorf("planet at %v, want (%v, 0, 0)", got, DefaultPlanetOrbit)
	}
	wantMoon := vmath.Vec3F{X: DefaultPlanetOrbit + DefaultMoonOrbit}
	if got := s.WorldPosition(kinematics.RoleMoon); got != wantMoon {
		t.Errorf("moon at %v, want %v", got, wantMoon)
	}
	wantSat := vmath.Vec3F{X: DefaultPlanetOrbit + DefaultSatelliteOrbit}
	if got := s.WorldPosition(kinematics.RoleSatellite); got != wantSat {
		t.Errorf("satellite at %v, want %v", got, wantSat)
	}
}

func TestChildrenFollowParent(t *testing.T) {
	s := newDefault(t)

	for _, days := range []float64{3.3, 91.31, 200, 1000.7} {
		s.Update(days)
		planet := s.WorldPosition(kinematics.RolePlanet)
		for _, role := range []kinematics.Role{kinematics.RoleMoon, kinematics.RoleSatellite} {
			n := s.Find(role)
			d := vmath.V3FDist(n.World, planet)
			if math.Abs(d-n.Body.Orbit.Radius) > 1e-9 {
				t.Errorf("t=%v %v: distance to planet %v, want %v", days, role, d, n.Body.Orbit.Radius)
			}
			if n.OrbitCenter() != planet {
				t.Errorf("%v orbit center %v, want planet %v", role, n.OrbitCenter(), planet)
			}
		}
	}
}

func TestResetReproducesInitialPose(t *testing.T) {
	s := newDefault(t)
	initial := s.Snapshot()

	s.Update(123.456)
	s.Update(7)
	s.Update(0)

	after := s.Snapshot()
	for i := range initial {
		if initial[i] != after[i] {
			t.Errorf("body %s: %+v after reset, want %+v", initial[i].Role, after[i], initial[i])
		}
	}
	if s.Days() != 0 {
		t.Errorf("days = %v, want 0", s.Days())
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newDefault(t)
	snap := s.Snapshot()
	s.Update(50)
	if snap[1].World != [3]float64{DefaultPlanetOrbit, 0, 0} {
		t.Errorf("snapshot mutated by later Update: %v", snap[1].World)
	}
	if snap[1].Role != "planet" {
		t.Errorf("role = %q, want planet", snap[1].Role)
	}
}

func TestNewValidation(t *testing.T) {
	base := DefaultSpecs()

	tests := []struct {
		name   string
		mutate func([]BodySpec) []BodySpec
	}{
		{"empty", func([]BodySpec) []BodySpec { return nil }},
		{"duplicate", func(s []BodySpec) []BodySpec { return append(s, s[1]) }},
		{"bad color", func(s []BodySpec) []BodySpec { s[2].Color = "not-a-color"; return s }},
		{"zero radius", func(s []BodySpec) []BodySpec { s[0].Radius = 0; return s }},
		{"missing period", func(s []BodySpec) []BodySpec { s[1].Orbit.PeriodDays = 0; return s }},
		{"child before parent", func(s []BodySpec) []BodySpec { return []BodySpec{s[2], s[0], s[1]} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := make([]BodySpec, len(base))
			copy(specs, base)
			_, err := New(tt.mutate(specs))
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestFindMissing(t *testing.T) {
	s, err := New(DefaultSpecs()[:2])
	if err != nil {
		t.Fatal(err)
	}
	if s.Find(kinematics.RoleMoon) != nil {
		t.Error("moon should be absent")
	}
	if s.WorldPosition(kinematics.RoleMoon) != (vmath.Vec3F{}) {
		t.Error("missing body should report origin")
	}
	if len(s.Find(kinematics.RoleSun).Children) != 1 {
		t.Error("sun should have one child")
	}
}
