package config

import (
	"fmt"

	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/tle"
	"github.com/lixenwraith/orrery/vmath"
)

// BodySpecs applies body overrides and the optional TLE to the default system
func (c *Config) BodySpecs() ([]scene.BodySpec, error) {
	specs := scene.DefaultSpecs()

	for i := range specs {
		s := &specs[i]
		b, ok := c.Bodies[s.Role.String()]
		if ok {
			b.apply(s)
		}

		if s.Role == kinematics.RoleSatellite && c.Satellite.TLE1 != "" {
			el, err := tle.Derive(c.Satellite.TLE1, c.Satellite.TLE2)
			if err != nil {
				return nil, fmt.Errorf("%w: satellite: %v", ErrInvalid, err)
			}
			s.Orbit = el.Orbit(s.Orbit.Radius)
		}
	}

	return specs, nil
}

func (b BodyConfig) apply(s *scene.BodySpec) {
	if b.Radius != nil {
		s.Radius = *b.Radius
	}
	if b.OrbitRadius != nil {
		s.Orbit.Radius = *b.OrbitRadius
	}
	if b.PeriodDays != nil {
		s.Orbit.PeriodDays = *b.PeriodDays
	}
	if b.InclinationDeg != nil {
		s.Orbit.Inclination = vmath.DegToRad(*b.InclinationDeg)
	}
	if b.SpinPeriodDays != nil {
		s.SpinPeriodDays = *b.SpinPeriodDays
	}
	if b.Color != nil {
		s.Color = *b.Color
	}
}
