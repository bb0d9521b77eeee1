package scene

import (
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/vmath"
)

// Default body parameters
// Satellite period is tunable; 0.0625 days (~90 min, low orbit) is too fast to
// read at terminal frame rates so the stock value is 0.5
const (
	DefaultPlanetOrbit     = 30.0
	DefaultPlanetPeriod    = 365.25
	DefaultPlanetSpin      = 1.0
	DefaultMoonOrbit       = 5.0
	DefaultMoonPeriod      = 27.3
	DefaultSatelliteOrbit  = 2.5
	DefaultSatellitePeriod = 0.5
	DefaultSatelliteIncDeg = 51.6
)

// DefaultSpecs returns the stock sun / planet / moon / satellite system
func DefaultSpecs() []BodySpec {
	return []BodySpec{
		{
			Role:     kinematics.RoleSun,
			Radius:   4,
			Color:    "#fdb813",
			Emissive: true,
		},
		{
			Role:           kinematics.RolePlanet,
			Parent:         kinematics.RoleSun,
			HasParent:      true,
			Orbit:          kinematics.Orbit{Radius: DefaultPlanetOrbit, PeriodDays: DefaultPlanetPeriod},
			SpinPeriodDays: DefaultPlanetSpin,
			Radius:         1.5,
			Color:          "#2e86ab",
		},
		{
			Role:           kinematics.RoleMoon,
			Parent:         kinematics.RolePlanet,
			HasParent:      true,
			Orbit:          kinematics.Orbit{Radius: DefaultMoonOrbit, PeriodDays: DefaultMoonPeriod},
			SpinPeriodDays: DefaultMoonPeriod,
			Radius:         0.4,
			Color:          "#b8b8b8",
		},
		{
			Role:      kinematics.RoleSatellite,
			Parent:    kinematics.RolePlanet,
			HasParent: true,
			Orbit: kinematics.Orbit{
				Radius:      DefaultSatelliteOrbit,
				PeriodDays:  DefaultSatellitePeriod,
				Inclination: vmath.DegToRad(DefaultSatelliteIncDeg),
			},
			FaceTravel: true,
			Radius:     0.15,
			Color:      "#e8e8ff",
		},
	}
}
