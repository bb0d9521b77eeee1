package audio

// AudioConfig holds cue synthesis settings
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0
	CueVolumes   map[CueType]float64
	SampleRate   int
}

// DefaultAudioConfig returns audio enabled at a moderate volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		CueVolumes: map[CueType]float64{
			CuePause:  0.6,
			CueResume: 0.6,
			CueReset:  0.5,
			CueMode:   0.5,
			CueYear:   0.7,
		},
		SampleRate: 44100,
	}
}

// volume returns the effective gain for a cue, clamped to [0, 1]
func (c *AudioConfig) volume(cue CueType) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1
	}
	v *= c.MasterVolume
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
