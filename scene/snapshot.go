package scene

// BodyState is a copy of one body's pose, safe to hand to other goroutines
type BodyState struct {
	Role     string     `json:"role"`
	Position [3]float64 `json:"pos"`
	World    [3]float64 `json:"world"`
	Rotation [3]float64 `json:"rot"`
	Angle    float64    `json:"angle"`
}

// Snapshot copies every body's current pose
func (s *Scene) Snapshot() []BodyState {
	out := make([]BodyState, len(s.nodes))
	for i, n := range s.nodes {
		tr := n.Body.Transform
		out[i] = BodyState{
			Role:     n.Role().String(),
			Position: [3]float64{tr.Position.X, tr.Position.Y, tr.Position.Z},
			World:    [3]float64{n.World.X, n.World.Y, n.World.Z},
			Rotation: [3]float64{tr.Rotation.X, tr.Rotation.Y, tr.Rotation.Z},
			Angle:    tr.Angle,
		}
	}
	return out
}
