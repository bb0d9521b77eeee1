package kinematics

// Role identifies a body in the system
type Role uint8

const (
	RoleSun Role = iota
	RolePlanet
	RoleMoon
	RoleSatellite
)

var roleNames = [...]string{
	RoleSun:       "sun",
	RolePlanet:    "planet",
	RoleMoon:      "moon",
	RoleSatellite: "satellite",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// ParseRole maps a config/section name to a Role
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return 0, false
}

// Body is an orbiting body's fixed parameters plus its mutable pose
type Body struct {
	Role           Role
	Orbit          Orbit
	SpinPeriodDays float64
	// FaceTravel turns the body to point along its direction of travel
	FaceTravel bool

	Transform Transform
}

// Update recomputes the body's pose for t days in place
func Update(b *Body, t float64) {
	angle := Angle(t, b.Orbit.PeriodDays)
	b.Transform.Angle = angle
	b.Transform.Position = Position(b.Orbit, t)

	rotY := Spin(t, b.SpinPeriodDays)
	if b.FaceTravel {
		rotY += Heading(angle)
	}
	b.Transform.Rotation.X = 0
	b.Transform.Rotation.Y = rotY
	b.Transform.Rotation.Z = 0
}

// UpdateAll recomputes every body for t days
func UpdateAll(bodies []*Body, t float64) {
	for _, b := range bodies {
		Update(b, t)
	}
}
