package audio

// CueType represents the short sounds played on viewer events
type CueType int

const (
	CuePause  CueType = iota // Clock paused
	CueResume                // Clock resumed
	CueReset                 // Clock reset to day zero
	CueMode                  // Camera mode switched
	CueYear                  // Year rollover
	cueTypeCount
)

var cueNames = [cueTypeCount]string{"pause", "resume", "reset", "mode", "year"}

// String returns the cue name used in config volume maps
func (c CueType) String() string {
	if c >= 0 && c < cueTypeCount {
		return cueNames[c]
	}
	return "unknown"
}

// ParseCue maps a config name to a cue
func ParseCue(name string) (CueType, bool) {
	for i, n := range cueNames {
		if n == name {
			return CueType(i), true
		}
	}
	return 0, false
}
