// Package scene holds the body hierarchy and applies kinematics poses to it
package scene

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/vmath"
)

// ErrInvalidScene reports an inconsistent body list
var ErrInvalidScene = errors.New("invalid scene")

// BodySpec describes one body before the scene is built
type BodySpec struct {
	Role           kinematics.Role
	Parent         kinematics.Role
	HasParent      bool
	Orbit          kinematics.Orbit
	SpinPeriodDays float64
	FaceTravel     bool
	Radius         float64 // display radius in scene units
	Color          string  // hex, e.g. "#2e86ab"
	Emissive       bool
}

// Node is one body in the graph
// World is the cached world position from the last Update
type Node struct {
	Body     *kinematics.Body
	Parent   *Node
	Children []*Node

	Radius   float64
	Color    colorful.Color
	Emissive bool

	World vmath.Vec3F
}

// Role is a shorthand for the body's role
func (n *Node) Role() kinematics.Role {
	return n.Body.Role
}

// Scene is a small retained body graph
// Nodes are kept parent-first so one pass resolves world positions
type Scene struct {
	nodes  []*Node
	byRole map[kinematics.Role]*Node
	days   float64
}

// New builds a scene from specs; parents must precede their children
func New(specs []BodySpec) (*Scene, error) {
	s := &Scene{
		nodes:  make([]*Node, 0, len(specs)),
		byRole: make(map[kinematics.Role]*Node, len(specs)),
	}

	for _, spec := range specs {
		if _, dup := s.byRole[spec.Role]; dup {
			return nil, fmt.Errorf("%w: duplicate body %s", ErrInvalidScene, spec.Role)
		}
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("%w: %s radius must be positive", ErrInvalidScene, spec.Role)
		}
		if spec.Orbit.Radius > 0 && spec.Orbit.PeriodDays <= 0 {
			return nil, fmt.Errorf("%w: %s orbit needs a positive period", ErrInvalidScene, spec.Role)
		}

		col, err := colorful.Hex(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %s color %q: %v", ErrInvalidScene, spec.Role, spec.Color, err)
		}

		node := &Node{
			Body: &kinematics.Body{
				Role:           spec.Role,
				Orbit:          spec.Orbit,
				SpinPeriodDays: spec.SpinPeriodDays,
				FaceTravel:     spec.FaceTravel,
			},
			Radius:   spec.Radius,
			Color:    col,
			Emissive: spec.Emissive,
		}

		if spec.HasParent {
			parent, ok := s.byRole[spec.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: %s parent %s not defined before it", ErrInvalidScene, spec.Role, spec.Parent)
			}
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}

		s.nodes = append(s.nodes, node)
		s.byRole[spec.Role] = node
	}

	if len(s.nodes) == 0 {
		return nil, fmt.Errorf("%w: no bodies", ErrInvalidScene)
	}

	s.Update(0)
	return s, nil
}

// Update poses every body for t days and refreshes world positions
func (s *Scene) Update(t float64) {
	s.days = t
	for _, n := range s.nodes {
		kinematics.Update(n.Body, t)
		if n.Parent != nil {
			n.World = vmath.V3FAdd(n.Parent.World, n.Body.Transform.Position)
		} else {
			n.World = n.Body.Transform.Position
		}
	}
}

// Days returns the clock value of the last Update
func (s *Scene) Days() float64 {
	return s.days
}

// Nodes returns bodies in parent-first order
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Find returns the node with role, or nil
func (s *Scene) Find(role kinematics.Role) *Node {
	return s.byRole[role]
}

// WorldPosition returns the cached world position of role, origin if absent
func (s *Scene) WorldPosition(role kinematics.Role) vmath.Vec3F {
	if n := s.byRole[role]; n != nil {
		return n.World
	}
	return vmath.Vec3F{}
}

// OrbitCenter returns the world point a node orbits
func (n *Node) OrbitCenter() vmath.Vec3F {
	if n.Parent != nil {
		return n.Parent.World
	}
	return vmath.Vec3F{}
}
