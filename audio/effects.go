package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	toneDuration  = 90 * time.Millisecond
	toneAttack    = 5 * time.Millisecond
	toneRelease   = 60 * time.Millisecond
	sweepDuration = 220 * time.Millisecond
	sweepAttack   = 20 * time.Millisecond
	sweepRelease  = 150 * time.Millisecond
	bellDuration  = 400 * time.Millisecond
	bellRelease   = 350 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/sustain/release gain ramp
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// sweep is a sine whose frequency glides linearly from start to end
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, toneDuration, wave, rate), toneDuration, toneAttack, toneRelease, rate)
}

// CreatePauseSound is a falling two-note pair
func CreatePauseSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	seq := beep.Seq(tone(659.25, WaveSine, rate), tone(440.0, WaveSine, rate))
	return newVolume(seq, cfg.volume(CuePause))
}

// CreateResumeSound is a rising two-note pair
func CreateResumeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	seq := beep.Seq(tone(440.0, WaveSine, rate), tone(659.25, WaveSine, rate))
	return newVolume(seq, cfg.volume(CueResume))
}

// CreateResetSound is a downward sweep over soft noise, a rewind
func CreateResetSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	glide := NewEnvelope(newSweep(1200, 200, sweepDuration, rate), sweepDuration, sweepAttack, sweepRelease, rate)
	noise := NewEnvelope(NewOscillator(0, sweepDuration, WaveNoise, rate), sweepDuration, sweepAttack, sweepRelease, rate)
	mixed := beep.Mix(newVolume(glide, 0.8), newVolume(noise, 0.15))
	return newVolume(mixed, cfg.volume(CueReset))
}

// CreateModeSound is a short square blip
func CreateModeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	return newVolume(tone(987.77, WaveSquare, rate), cfg.volume(CueMode)*0.5)
}

// CreateYearSound is a bell with an octave overtone
func CreateYearSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(880.0, bellDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, bellDuration, toneAttack, bellRelease, rate)

	over := NewOscillator(1760.0, bellDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, bellDuration, toneAttack, bellRelease/2, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.volume(CueYear))
}

// GetCueSound returns the streamer for a cue, nil for unknown cues
func GetCueSound(cue CueType, cfg *AudioConfig) beep.Streamer {
	switch cue {
	case CuePause:
		return CreatePauseSound(cfg)
	case CueResume:
		return CreateResumeSound(cfg)
	case CueReset:
		return CreateResetSound(cfg)
	case CueMode:
		return CreateModeSound(cfg)
	case CueYear:
		return CreateYearSound(cfg)
	default:
		return nil
	}
}
