package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink is the output device; the speaker in production
type Sink interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

type speakerSink struct{}

func (speakerSink) Init(rate beep.SampleRate, bufferSize int) error { return speaker.Init(rate, bufferSize) }
func (speakerSink) Play(s beep.Streamer)                            { speaker.Play(s) }
func (speakerSink) Lock()                                           { speaker.Lock() }
func (speakerSink) Unlock()                                         { speaker.Unlock() }

// CuePlayer plays viewer cues through one long-lived mixer
// Every method is a no-op until Initialize succeeds
type CuePlayer struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	sink        Sink
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewCuePlayer creates a player on the system speaker
func NewCuePlayer(cfg *AudioConfig) *CuePlayer {
	return NewCuePlayerWithSink(cfg, speakerSink{})
}

// NewCuePlayerWithSink creates a player on an explicit sink
func NewCuePlayerWithSink(cfg *AudioConfig, sink Sink) *CuePlayer {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &CuePlayer{
		cfg:   cfg,
		sink:  sink,
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
	}
}

// Initialize opens the sink and starts the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := p.sink.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return err
	}

	p.sink.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue; returns false when nothing was queued
func (p *CuePlayer) Play(cue CueType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return false
	}

	s := GetCueSound(cue, p.cfg)
	if s == nil {
		return false
	}

	p.sink.Lock()
	p.mixer.Add(s)
	p.sink.Unlock()
	return true
}

// ToggleMute flips mute and returns the new state
// Muting also cuts any cue still playing
func (p *CuePlayer) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted && p.initialized {
		p.sink.Lock()
		p.mixer.Clear()
		p.sink.Unlock()
	}
	return p.muted
}

// IsMuted reports mute state
func (p *CuePlayer) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// IsInitialized reports whether the sink opened
func (p *CuePlayer) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Cleanup stops all cues
// beep has no speaker close, so clearing the mixer is the teardown
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	p.sink.Lock()
	p.mixer.Clear()
	p.sink.Unlock()
	p.initialized = false
}
