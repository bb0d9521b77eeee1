package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides config fields from ORRERY_* environment variables
// A nil lookup applies nothing
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	if v, ok := lookup("ORRERY_FPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envErr("ORRERY_FPS", v, err)
		}
		cfg.View.FPS = n
	}

	if v, ok := lookup("ORRERY_SPEED"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envErr("ORRERY_SPEED", v, err)
		}
		cfg.Clock.InitialSpeed = f
	}

	if v, ok := lookup("ORRERY_AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envErr("ORRERY_AUDIO_ENABLED", v, err)
		}
		cfg.Audio.Enabled = b
	}

	// Master volume 0-100 converted to 0.0-1.0
	if v, ok := lookup("ORRERY_MASTER_VOLUME"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envErr("ORRERY_MASTER_VOLUME", v, err)
		}
		cfg.Audio.Volume = float64(n) / 100.0
	}

	// Per-cue volumes as JSON, e.g. {"year":0.9,"mode":0.2}
	if v, ok := lookup("ORRERY_CUE_VOLUMES"); ok {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(v), &volumes); err != nil {
			return envErr("ORRERY_CUE_VOLUMES", v, err)
		}
		if cfg.Audio.CueVolumes == nil {
			cfg.Audio.CueVolumes = make(map[string]float64, len(volumes))
		}
		for name, vol := range volumes {
			cfg.Audio.CueVolumes[name] = vol
		}
	}

	if v, ok := lookup("ORRERY_STREAM_ADDR"); ok {
		cfg.Stream.Addr = v
	}

	if v, ok := lookup("ORRERY_TRACING_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envErr("ORRERY_TRACING_ENABLED", v, err)
		}
		cfg.Tracing.Enabled = b
	}

	if v, ok := lookup("ORRERY_TRACING_EXPORTER"); ok {
		cfg.Tracing.Exporter = v
	}

	if v, ok := lookup("ORRERY_OTLP_ENDPOINT"); ok {
		cfg.Tracing.Endpoint = v
	}

	if v, ok := lookup("ORRERY_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}

	return nil
}

func envErr(key, value string, err error) error {
	return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, value, err)
}
