// Package tle derives circular-orbit parameters for the satellite body from
// a two-line element set
package tle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/lixenwraith/orrery/kinematics"
)

// ErrInvalid reports a malformed or unpropagatable element set
var ErrInvalid = errors.New("invalid TLE")

// Earth gravitational parameter for WGS72, km^3/s^2, matching the propagator constants
const muWGS72 = 398600.8

const secondsPerDay = 86400.0

// Elements is the subset of an element set the scene uses
type Elements struct {
	Epoch       time.Time
	Inclination float64 // radians
	PeriodDays  float64
	SemiMajorKm float64
}

// Orbit returns the kinematics orbit at radius r using the derived inclination and period
func (e Elements) Orbit(radius float64) kinematics.Orbit {
	return kinematics.Orbit{
		Radius:      radius,
		PeriodDays:  e.PeriodDays,
		Inclination: e.Inclination,
	}
}

// Derive propagates the element set to its own epoch and reads inclination from
// the angular momentum vector and period from the vis-viva semi-major axis
func Derive(line1, line2 string) (Elements, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	// go-satellite exits the process on malformed lines, so validate first
	if err := validateLines(line1, line2); err != nil {
		return Elements{}, err
	}

	epoch, err := parseEpoch(line1)
	if err != nil {
		return Elements{}, err
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	if sat.Error != 0 {
		return Elements{}, fmt.Errorf("%w: sgp4 init code=%d %s", ErrInvalid, sat.Error, sat.ErrorStr)
	}

	pos, vel := satellite.Propagate(sat, epoch.Year(), int(epoch.Month()), epoch.Day(),
		epoch.Hour(), epoch.Minute(), epoch.Second())

	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	v2 := vel.X*vel.X + vel.Y*vel.Y + vel.Z*vel.Z
	if math.IsNaN(r) || math.IsInf(r, 0) || r == 0 {
		return Elements{}, fmt.Errorf("%w: propagation produced no position", ErrInvalid)
	}

	// h = r x v
	hx := pos.Y*vel.Z - pos.Z*vel.Y
	hy := pos.Z*vel.X - pos.X*vel.Z
	hz := pos.X*vel.Y - pos.Y*vel.X
	h := math.Sqrt(hx*hx + hy*hy + hz*hz)
	if h == 0 {
		return Elements{}, fmt.Errorf("%w: degenerate velocity", ErrInvalid)
	}

	energy := 2/r - v2/muWGS72
	if energy <= 0 {
		return Elements{}, fmt.Errorf("%w: unbound orbit", ErrInvalid)
	}
	a := 1 / energy
	period := 2 * math.Pi * math.Sqrt(a*a*a/muWGS72)

	return Elements{
		Epoch:       epoch,
		Inclination: math.Acos(math.Max(-1, math.Min(1, hz/h))),
		PeriodDays:  period / secondsPerDay,
		SemiMajorKm: a,
	}, nil
}

func validateLines(line1, line2 string) error {
	if len(line1) != 69 {
		return fmt.Errorf("%w: line1 length %d, expected 69", ErrInvalid, len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("%w: line2 length %d, expected 69", ErrInvalid, len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("%w: line1 must start with '1', got '%c'", ErrInvalid, line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("%w: line2 must start with '2', got '%c'", ErrInvalid, line2[0])
	}
	return validateFields(line1, line2)
}

// numericField is one value go-satellite parses, as the exact string it builds
type numericField struct {
	name  string
	value string
	isInt bool
}

func numericFields(line1, line2 string) []numericField {
	strip := func(s string) string { return strings.Replace(s, " ", "", 2) }
	return []numericField{
		{"satellite number", strings.TrimSpace(line1[2:7]), true},
		{"epoch year", line1[18:20], true},
		{"epoch day", line1[20:32], false},
		{"ndot", strip(line1[33:43]), false},
		{"nddot", strip(line1[44:45] + "." + line1[45:50] + "e" + line1[50:52]), false},
		{"bstar", strip(line1[53:54] + "." + line1[54:59] + "e" + line1[59:61]), false},
		{"inclination", strip(line2[8:16]), false},
		{"raan", strip(line2[17:25]), false},
		{"eccentricity", "." + line2[26:33], false},
		{"argument of perigee", strip(line2[34:42]), false},
		{"mean anomaly", strip(line2[43:51]), false},
		{"mean motion", strip(line2[52:63]), false},
	}
}

// validateFields parses every numeric field the propagator reads, since a
// parse failure inside go-satellite is a log.Fatal
func validateFields(line1, line2 string) error {
	for _, f := range numericFields(line1, line2) {
		var err error
		if f.isInt {
			_, err = strconv.ParseInt(f.value, 10, 0)
		} else {
			_, err = strconv.ParseFloat(f.value, 64)
		}
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalid, f.name, f.value)
		}
	}
	return nil
}

// parseEpoch reads the two-digit year and fractional day-of-year from line 1
func parseEpoch(line1 string) (time.Time, error) {
	yy, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch year: %v", ErrInvalid, err)
	}
	doy, err := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch day: %v", ErrInvalid, err)
	}
	if doy < 1 || doy >= 367 {
		return time.Time{}, fmt.Errorf("%w: epoch day %v out of range", ErrInvalid, doy)
	}

	year := 2000 + yy
	if yy >= 57 {
		year = 1900 + yy
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((doy - 1) * secondsPerDay * float64(time.Second))).Truncate(time.Second), nil
}
