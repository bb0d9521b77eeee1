package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never drained")
	return 0, 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("Expected 100 samples ok, got %d %v", n, ok)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Errorf("Sample %d not mono: %f vs %f", i, samples[i][0], samples[i][1])
		}
	}
	if osc.Err() != nil {
		t.Errorf("Expected no error, got: %v", osc.Err())
	}
}

// TestOscillatorDuration verifies the oscillator stops after its duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(10, 250*time.Millisecond, WaveSquare, rate)

	total, _ := drain(t, osc)
	if total != 250 {
		t.Errorf("Expected 250 samples, got %d", total)
	}

	// Drained streamer reports 0, false
	n, ok := osc.Stream(make([][2]float64, 8))
	if n != 0 || ok {
		t.Errorf("Expected (0, false) after drain, got (%d, %v)", n, ok)
	}
}

// TestEnvelopeShape verifies attack starts silent and sustain reaches full gain
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected 100 samples, got %d", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Expected full gain in sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Expected release to fade: %f then %f", samples[90][0], samples[99][0])
	}
}

// TestSweepGlides verifies the sweep completes its duration
func TestSweepGlides(t *testing.T) {
	rate := beep.SampleRate(8000)
	total, peak := drain(t, newSweep(1000, 100, 50*time.Millisecond, rate))
	if total != 400 {
		t.Errorf("Expected 400 samples, got %d", total)
	}
	if peak > 1.0 || peak < 0.5 {
		t.Errorf("Unexpected sweep peak %f", peak)
	}
}

// TestCueSounds verifies every cue produces bounded, audible output
func TestCueSounds(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000

	for c := CuePause; c < cueTypeCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := GetCueSound(c, cfg)
			if s == nil {
				t.Fatalf("No streamer for cue %s", c)
			}
			total, peak := drain(t, s)
			if total == 0 {
				t.Error("Cue produced no samples")
			}
			if peak <= 0 || peak > 1.0 {
				t.Errorf("Cue peak %f outside (0, 1]", peak)
			}
		})
	}

	if GetCueSound(CueType(99), cfg) != nil {
		t.Error("Expected nil streamer for unknown cue")
	}
}

// TestZeroVolumeSilent verifies a muted master volume yields silence
func TestZeroVolumeSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 8000
	cfg.MasterVolume = 0

	_, peak := drain(t, CreateYearSound(cfg))
	if peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}

func TestCueNames(t *testing.T) {
	for c := CuePause; c < cueTypeCount; c++ {
		got, ok := ParseCue(c.String())
		if !ok || got != c {
			t.Errorf("ParseCue(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCue("explosion"); ok {
		t.Error("Expected unknown cue name to fail")
	}
	if CueType(-1).String() != "unknown" {
		t.Error("Expected unknown for out-of-range cue")
	}
}
