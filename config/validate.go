package config

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/tle"
)

// Speed bounds in simulated days per real second
const (
	minSpeed = 0.1
	maxSpeed = 50.0
)

// Validate checks every field, returning the first failure wrapped in ErrInvalid
func (c *Config) Validate() error {
	if c.View.FPS < 1 || c.View.FPS > 240 {
		return invalid("view.fps", c.View.FPS, "must be in [1, 240]")
	}
	if c.View.StarCount < 0 {
		return invalid("view.star_count", c.View.StarCount, "must be non-negative")
	}

	if c.Clock.InitialSpeed < minSpeed || c.Clock.InitialSpeed > maxSpeed {
		return invalid("clock.initial_speed", c.Clock.InitialSpeed, "must be in [0.1, 50]")
	}
	if c.Clock.FocusSpeed < minSpeed || c.Clock.FocusSpeed > maxSpeed {
		return invalid("clock.focus_speed", c.Clock.FocusSpeed, "must be in [0.1, 50]")
	}

	if c.Camera.Damping <= 0 || c.Camera.Damping > 1 {
		return invalid("camera.damping", c.Camera.Damping, "must be in (0, 1]")
	}
	if c.Camera.OverviewDistance <= 0 {
		return invalid("camera.overview_distance", c.Camera.OverviewDistance, "must be positive")
	}
	if c.Camera.FocusDistance <= 0 {
		return invalid("camera.focus_distance", c.Camera.FocusDistance, "must be positive")
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return invalid("camera.fov_degrees", c.Camera.FOVDegrees, "must be in (0, 180)")
	}

	for name, b := range c.Bodies {
		if _, ok := kinematics.ParseRole(name); !ok {
			return invalid("bodies", name, "unknown body")
		}
		if err := b.validate(name); err != nil {
			return err
		}
	}

	if (c.Satellite.TLE1 == "") != (c.Satellite.TLE2 == "") {
		return invalid("satellite", "tle", "tle1 and tle2 must be set together")
	}
	if c.Satellite.TLE1 != "" {
		if _, err := tle.Derive(c.Satellite.TLE1, c.Satellite.TLE2); err != nil {
			return fmt.Errorf("%w: satellite: %v", ErrInvalid, err)
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return invalid("audio.volume", c.Audio.Volume, "must be in [0, 1]")
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return invalid("audio.sample_rate", c.Audio.SampleRate, "must be in [8000, 192000]")
	}
	for name, v := range c.Audio.CueVolumes {
		if _, ok := audio.ParseCue(name); !ok {
			return invalid("audio.cue_volumes", name, "unknown cue")
		}
		if v < 0 || v > 1 {
			return invalid("audio.cue_volumes."+name, v, "must be in [0, 1]")
		}
	}

	if c.Stream.RateHz <= 0 {
		return invalid("stream.rate_hz", c.Stream.RateHz, "must be positive")
	}
	if c.Stream.MaxClients < 1 {
		return invalid("stream.max_clients", c.Stream.MaxClients, "must be at least 1")
	}
	if c.Stream.QueueSize < 1 {
		return invalid("stream.queue_size", c.Stream.QueueSize, "must be at least 1")
	}

	switch strings.ToLower(c.Tracing.Exporter) {
	case "stdout", "otlp", "otlpgrpc":
	default:
		return invalid("tracing.exporter", c.Tracing.Exporter, "must be stdout or otlp")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return invalid("tracing.sample_ratio", c.Tracing.SampleRatio, "must be in [0, 1]")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return invalid("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return invalid("log.format", c.Log.Format, "must be text or json")
	}

	if _, err := c.KeyTable(); err != nil {
		return err
	}

	return nil
}

func (b BodyConfig) validate(name string) error {
	field := "bodies." + name
	if b.Radius != nil && *b.Radius <= 0 {
		return invalid(field+".radius", *b.Radius, "must be positive")
	}
	if b.OrbitRadius != nil && *b.OrbitRadius < 0 {
		return invalid(field+".orbit_radius", *b.OrbitRadius, "must be non-negative")
	}
	if b.PeriodDays != nil && *b.PeriodDays <= 0 {
		return invalid(field+".period_days", *b.PeriodDays, "must be positive")
	}
	if b.InclinationDeg != nil && (*b.InclinationDeg < -90 || *b.InclinationDeg > 90) {
		return invalid(field+".inclination_deg", *b.InclinationDeg, "must be in [-90, 90]")
	}
	if b.SpinPeriodDays != nil && *b.SpinPeriodDays < 0 {
		return invalid(field+".spin_period_days", *b.SpinPeriodDays, "must be non-negative")
	}
	return nil
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalid, field, value, reason)
}
