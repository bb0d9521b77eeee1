// Package config loads viewer settings from TOML with environment overrides
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/telemetry"
)

// ErrInvalid marks a config value outside its allowed range
var ErrInvalid = errors.New("invalid config")

// Config is the full settings tree
type Config struct {
	View      ViewConfig            `toml:"view"`
	Clock     ClockConfig           `toml:"clock"`
	Camera    CameraConfig          `toml:"camera"`
	Bodies    map[string]BodyConfig `toml:"bodies"`
	Satellite SatelliteConfig       `toml:"satellite"`
	Audio     AudioConfig           `toml:"audio"`
	Stream    StreamConfig          `toml:"stream"`
	Tracing   TracingConfig         `toml:"tracing"`
	Log       LogConfig             `toml:"log"`

	Keys        map[string]string `toml:"keys"`
	SpecialKeys map[string]string `toml:"special_keys"`
}

// ViewConfig controls the terminal frame loop
type ViewConfig struct {
	FPS       int   `toml:"fps"`
	StarCount int   `toml:"star_count"`
	StarSeed  int64 `toml:"star_seed"`
	ShowInfo  bool  `toml:"show_info"`
}

// ClockConfig sets the initial clock state
type ClockConfig struct {
	InitialSpeed    float64 `toml:"initial_speed"`
	FocusSpeed      float64 `toml:"focus_speed"`
	FocusLocksSpeed bool    `toml:"focus_locks_speed"`
	StartPaused     bool    `toml:"start_paused"`
}

// CameraConfig mirrors camera.Config
type CameraConfig struct {
	Damping          float64 `toml:"damping"`
	OverviewDistance float64 `toml:"overview_distance"`
	FocusDistance    float64 `toml:"focus_distance"`
	FOVDegrees       float64 `toml:"fov_degrees"`
	InitialPitch     float64 `toml:"initial_pitch"`
}

// BodyConfig overrides one default body; nil fields keep the default
type BodyConfig struct {
	Radius         *float64 `toml:"radius"`
	OrbitRadius    *float64 `toml:"orbit_radius"`
	PeriodDays     *float64 `toml:"period_days"`
	InclinationDeg *float64 `toml:"inclination_deg"`
	SpinPeriodDays *float64 `toml:"spin_period_days"`
	Color          *string  `toml:"color"`
}

// SatelliteConfig optionally derives the satellite orbit from a two-line element set
type SatelliteConfig struct {
	TLE1 string `toml:"tle1"`
	TLE2 string `toml:"tle2"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled    bool               `toml:"enabled"`
	Volume     float64            `toml:"volume"` // 0.0-1.0
	SampleRate int                `toml:"sample_rate"`
	CueVolumes map[string]float64 `toml:"cue_volumes"`
}

// StreamConfig controls the optional snapshot server; empty Addr disables it
type StreamConfig struct {
	Addr       string  `toml:"addr"`
	RateHz     float64 `toml:"rate_hz"`
	MaxClients int     `toml:"max_clients"`
	QueueSize  int     `toml:"queue_size"`
}

// TracingConfig mirrors telemetry.TracingConfig
type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Exporter    string  `toml:"exporter"`
	Endpoint    string  `toml:"endpoint"`
	File        string  `toml:"file"`
	SampleRatio float64 `toml:"sample_ratio"`
}

// LogConfig sets the slog level and format
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the stock settings
func Default() *Config {
	cam := camera.DefaultConfig()
	ac := audio.DefaultAudioConfig()
	return &Config{
		View: ViewConfig{
			FPS:       30,
			StarCount: 400,
			StarSeed:  1,
		},
		Clock: ClockConfig{
			InitialSpeed:    1,
			FocusSpeed:      0.1,
			FocusLocksSpeed: true,
		},
		Camera: CameraConfig{
			Damping:          cam.Damping,
			OverviewDistance: cam.OverviewDistance,
			FocusDistance:    cam.FocusDistance,
			FOVDegrees:       cam.FOVDegrees,
			InitialPitch:     cam.InitialPitch,
		},
		Audio: AudioConfig{
			Enabled:    ac.Enabled,
			Volume:     ac.MasterVolume,
			SampleRate: ac.SampleRate,
		},
		Stream: StreamConfig{
			RateHz:     10,
			MaxClients: 16,
			QueueSize:  8,
		},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			File:        "logs/traces.json",
			SampleRatio: 1,
		},
		Log: LogConfig{
			Level:  "debug",
			Format: "text",
		},
	}
}

// Parse decodes TOML data over the defaults and validates the result
// Environment overrides are not applied
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path (optional), applies ORRERY_* environment overrides and validates
func Load(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if err := checkUndecoded(md); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
}

// CameraSettings converts to the camera package form
func (c *Config) CameraSettings() camera.Config {
	return camera.Config{
		Damping:          c.Camera.Damping,
		OverviewDistance: c.Camera.OverviewDistance,
		FocusDistance:    c.Camera.FocusDistance,
		FOVDegrees:       c.Camera.FOVDegrees,
		InitialPitch:     c.Camera.InitialPitch,
	}
}

// AudioSettings converts to the audio package form; cue names are validated earlier
func (c *Config) AudioSettings() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.Volume
	ac.SampleRate = c.Audio.SampleRate
	for name, v := range c.Audio.CueVolumes {
		if cue, ok := audio.ParseCue(name); ok {
			ac.CueVolumes[cue] = v
		}
	}
	return ac
}

// TracingSettings converts to the telemetry package form
func (c *Config) TracingSettings() telemetry.TracingConfig {
	return telemetry.TracingConfig{
		Enabled:     c.Tracing.Enabled,
		ServiceName: "orrery",
		Exporter:    c.Tracing.Exporter,
		Endpoint:    c.Tracing.Endpoint,
		File:        c.Tracing.File,
		SampleRatio: c.Tracing.SampleRatio,
	}
}

// KeyTable merges configured bindings over the defaults
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.Bindings{Keys: c.Keys, SpecialKeys: c.SpecialKeys}.Table()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
