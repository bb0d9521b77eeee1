package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/stream"
	"github.com/lixenwraith/orrery/telemetry"
)

// Camera control steps per key press
const (
	orbitStep = 5 * math.Pi / 180
	zoomStep  = 1.25
)

// Headless frames are composed into a buffer of this size so the render path stays exercised
const (
	headlessWidth  = 80
	headlessHeight = 24
)

// Options configures the viewer loop
type Options struct {
	FPS             int
	InitialSpeed    float64
	FocusSpeed      float64
	FocusLocksSpeed bool
	StartPaused     bool
	ShowInfo        bool
	StarCount       int
	StarSeed        int64
	Camera          camera.Config

	// MaxFrames stops Run after this many frames; 0 runs until cancelled
	MaxFrames int
}

// DefaultOptions matches the stock configuration
func DefaultOptions() Options {
	return Options{
		FPS:             30,
		InitialSpeed:    1,
		FocusSpeed:      0.1,
		FocusLocksSpeed: true,
		StarCount:       400,
		StarSeed:        1,
		Camera:          camera.DefaultConfig(),
	}
}

// Publisher receives a snapshot every frame and must not block
type Publisher interface {
	Publish(f stream.Frame) bool
}

// Deps are the viewer's optional collaborators; nil fields are skipped
type Deps struct {
	Screen    tcell.Screen // nil runs headless
	Clock     clockwork.Clock
	Keys      *input.KeyTable
	Audio     *audio.CuePlayer
	Metrics   *telemetry.Collector
	Publisher Publisher
	Logger    logging.Logger

	// CrashHandler runs on a frame loop panic after the screen is released
	// The panic is re-raised when nil
	CrashHandler func(r any)
}

// Viewer owns all simulation state; every method runs on the frame loop goroutine
type Viewer struct {
	opts Options

	clock *SimClock
	timer *FrameTimer
	scene *scene.Scene
	cam   *camera.Camera
	orch  *render.RenderOrchestrator
	info  *render.InfoPanel
	keys  *input.KeyTable

	screen    tcell.Screen
	audio     *audio.CuePlayer
	metrics   *telemetry.Collector
	publisher Publisher
	log       logging.Logger
	onCrash   func(r any)

	frames int
	fps    float64
	quit   bool
}

// NewViewer builds the scene from specs and wires the collaborators
func NewViewer(specs []scene.BodySpec, opts Options, deps Deps) (*Viewer, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("viewer fps must be positive, got %d", opts.FPS)
	}
	sc, err := scene.New(specs)
	if err != nil {
		return nil, err
	}

	keys := deps.Keys
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	log := deps.Logger
	if log == nil {
		log = logging.Noop()
	}

	w, h := headlessWidth, headlessHeight
	if deps.Screen != nil {
		w, h = deps.Screen.Size()
	}

	info := &render.InfoPanel{}
	info.SetVisible(opts.ShowInfo)

	v := &Viewer{
		opts:      opts,
		clock:     NewSimClock(opts.InitialSpeed),
		timer:     NewFrameTimer(deps.Clock, DefaultMaxFrameDelta),
		scene:     sc,
		cam:       camera.New(opts.Camera),
		orch:      render.NewSceneOrchestrator(w, h, render.NewStarfield(opts.StarCount, opts.StarSeed), info),
		info:      info,
		keys:      keys,
		screen:    deps.Screen,
		audio:     deps.Audio,
		metrics:   deps.Metrics,
		publisher: deps.Publisher,
		log:       log,
		onCrash:   deps.CrashHandler,
	}
	v.clock.SetPaused(opts.StartPaused)
	return v, nil
}

// Clock exposes the simulation clock
func (v *Viewer) Clock() *SimClock { return v.clock }

// Scene exposes the scene graph
func (v *Viewer) Scene() *scene.Scene { return v.scene }

// Camera exposes the camera controller
func (v *Viewer) Camera() *camera.Camera { return v.cam }

// Info exposes the info panel pass
func (v *Viewer) Info() *render.InfoPanel { return v.info }

// Buffer returns the last composed frame
func (v *Viewer) Buffer() *render.Buffer { return v.orch.Buffer() }

// Frames returns the number of frames stepped
func (v *Viewer) Frames() int { return v.frames }

// Quitting reports whether a quit action was applied
func (v *Viewer) Quitting() bool { return v.quit }

// Apply performs one user action
func (v *Viewer) Apply(ctx context.Context, a input.Action) {
	if a == input.ActionNone {
		return
	}
	_, span := telemetry.StartAction(ctx, a.String(),
		attribute.Float64("days", v.clock.Days()),
		attribute.Float64("speed", v.clock.Speed()))
	defer span.End()
	v.metrics.CountAction(a.String())

	switch a {
	case input.ActionQuit:
		v.quit = true

	case input.ActionToggleMute:
		if v.audio != nil {
			span.SetAttributes(attribute.Bool("muted", v.audio.ToggleMute()))
		}

	case input.ActionTogglePause:
		if v.clock.TogglePause() {
			v.cue(audio.CuePause)
		} else {
			v.cue(audio.CueResume)
		}

	case input.ActionReset:
		v.clock.Reset()
		v.scene.Update(0)
		v.cue(audio.CueReset)

	case input.ActionSpeedUp:
		v.clock.StepSpeed(1)
	case input.ActionSpeedDown:
		v.clock.StepSpeed(-1)

	case input.ActionToggleCamera:
		v.cam.SetMode(v.cam.Mode().Toggle())
		v.syncFocusLock()
		span.SetAttributes(attribute.String("mode", v.cam.Mode().String()))
		v.cue(audio.CueMode)

	case input.ActionToggleInfo:
		v.info.Toggle()

	case input.ActionOrbitLeft:
		v.cam.Orbit(-orbitStep, 0)
	case input.ActionOrbitRight:
		v.cam.Orbit(orbitStep, 0)
	case input.ActionOrbitUp:
		v.cam.Orbit(0, orbitStep)
	case input.ActionOrbitDown:
		v.cam.Orbit(0, -orbitStep)
	case input.ActionZoomIn:
		v.cam.ZoomBy(zoomStep)
	case input.ActionZoomOut:
		v.cam.ZoomBy(1 / zoomStep)
	case input.ActionResetView:
		v.cam.ResetView()
	}

	v.log.Debug(ctx, "action applied",
		logging.String("action", a.String()),
		logging.Float("speed", v.clock.Speed()),
		logging.Bool("paused", v.clock.IsPaused()))
}

// syncFocusLock pins the clock to the focus speed while the camera tracks the planet
func (v *Viewer) syncFocusLock() {
	if v.opts.FocusLocksSpeed && v.cam.Mode() == camera.ModeFocus {
		v.clock.Lock(v.opts.FocusSpeed)
		return
	}
	v.clock.Unlock()
}

func (v *Viewer) cue(c audio.CueType) {
	if v.audio != nil {
		v.audio.Play(c)
	}
}

// HandleEvent maps one terminal event; key events become actions
func (v *Viewer) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		v.Apply(ctx, v.keys.Lookup(input.FromEvent(e)))
	case *tcell.EventResize:
		if v.screen != nil {
			v.screen.Sync()
		}
	}
}

// Step advances one frame by dt real seconds: clock, kinematics, camera, render, metrics, publish
func (v *Viewer) Step(ctx context.Context, dt float64) {
	start := time.Now()

	if v.clock.Advance(dt) {
		v.cue(audio.CueYear)
		v.log.Info(ctx, "year rollover", logging.Int("year", v.clock.Year()))
	}
	v.scene.Update(v.clock.Days())
	v.cam.Ease(v.scene.WorldPosition(kinematics.RolePlanet))

	v.frames++
	if dt > 0 {
		// Exponential moving average keeps the readout steady
		inst := 1 / dt
		if v.fps == 0 {
			v.fps = inst
		} else {
			v.fps += (inst - v.fps) * 0.1
		}
	}

	v.render()

	v.metrics.ObserveFrame(time.Since(start).Seconds(), v.clock.Days(), v.clock.Speed(), v.clock.IsPaused())
	if v.publisher != nil {
		v.publisher.Publish(v.Frame())
	}
}

func (v *Viewer) render() {
	if v.screen == nil {
		w, h := v.orch.Buffer().Size()
		v.orch.Compose(render.NewRenderContext(v.scene, v.cam, v.HUD(), w, h))
		return
	}
	w, h := v.screen.Size()
	v.orch.RenderFrame(render.NewRenderContext(v.scene, v.cam, v.HUD(), w, h), v.screen)
}

// HUD collects the readouts for the current frame
func (v *Viewer) HUD() render.HUD {
	return render.HUD{
		Day:    v.clock.Day(),
		Year:   v.clock.Year(),
		Speed:  v.clock.Speed(),
		Locked: v.clock.IsLocked(),
		Paused: v.clock.IsPaused(),
		Mode:   v.cam.Mode().String(),
		Muted:  v.audio != nil && v.audio.IsMuted(),
		FPS:    v.fps,
	}
}

// Frame snapshots the clock and every body for streaming
func (v *Viewer) Frame() stream.Frame {
	return stream.Frame{
		Day:    v.clock.Day(),
		Year:   v.clock.Year(),
		Days:   v.clock.Days(),
		Speed:  v.clock.Speed(),
		Paused: v.clock.IsPaused(),
		Mode:   v.cam.Mode().String(),
		Bodies: v.scene.Snapshot(),
	}
}

// Run drives frames on a ticker until ctx is cancelled, events closes, a quit action
// arrives or MaxFrames is reached
// Events are drained without blocking at the start of each frame; nil events runs headless
func (v *Viewer) Run(ctx context.Context, events <-chan tcell.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if v.screen != nil {
				v.screen.Fini()
			}
			if v.onCrash == nil {
				panic(r)
			}
			v.onCrash(r)
			err = fmt.Errorf("viewer crashed: %v", r)
		}
	}()

	interval := time.Second / time.Duration(v.opts.FPS)
	ticker := v.timer.Clock().NewTicker(interval)
	defer ticker.Stop()
	v.timer.Reset()

	v.log.Info(ctx, "viewer started",
		logging.Int("fps", v.opts.FPS),
		logging.Bool("headless", v.screen == nil),
		logging.Int("bodies", len(v.scene.Nodes())))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if !v.drain(ctx, events) {
				return nil
			}
			if v.quit {
				return nil
			}
			v.Step(ctx, v.timer.Tick())
			if v.opts.MaxFrames > 0 && v.frames >= v.opts.MaxFrames {
				return nil
			}
		}
	}
}

// drain applies every pending event; returns false when the channel closed
func (v *Viewer) drain(ctx context.Context, events <-chan tcell.Event) bool {
	if events == nil {
		return true
	}
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			v.HandleEvent(ctx, ev)
		default:
			return true
		}
	}
}
