package engine

import (
	"context"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/stream"
	"github.com/lixenwraith/orrery/telemetry"
	"github.com/lixenwraith/orrery/vmath"
)

// countingSink records how many cues reached the mixer
type countingSink struct {
	locks atomic.Int32
}

func (s *countingSink) Init(beep.SampleRate, int) error { return nil }
func (s *countingSink) Play(beep.Streamer)              {}
func (s *countingSink) Lock()                           { s.locks.Add(1) }
func (s *countingSink) Unlock()                         {}

func (s *countingSink) count() int {
	return int(s.locks.Load())
}

type capturePublisher struct {
	frames []stream.Frame
}

func (p *capturePublisher) Publish(f stream.Frame) bool {
	p.frames = append(p.frames, f)
	return true
}

type panicPublisher struct{}

func (panicPublisher) Publish(stream.Frame) bool { panic("publish exploded") }

func newTestViewer(t *testing.T, opts Options, deps Deps) *Viewer {
	t.Helper()
	if deps.Clock == nil {
		deps.Clock = clockwork.NewFakeClock()
	}
	v, err := NewViewer(scene.DefaultSpecs(), opts, deps)
	if err != nil {
		t.Fatalf("NewViewer failed: %v", err)
	}
	return v
}

func approxVec(a, b vmath.Vec3F, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestNewViewerRejectsBadInput(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 0
	if _, err := NewViewer(scene.DefaultSpecs(), opts, Deps{}); err == nil {
		t.Error("Expected error for zero fps")
	}
	if _, err := NewViewer(nil, DefaultOptions(), Deps{}); err == nil {
		t.Error("Expected error for empty scene")
	}
}

// TestStepAdvance checks speed 5, 10 frames of 0.1s gives 5 days and the scene follows the clock
func TestStepAdvance(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialSpeed = 5
	v := newTestViewer(t, opts, Deps{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		v.Step(ctx, 0.1)
	}

	if math.Abs(v.Clock().Days()-5.0) > 1e-9 {
		t.Errorf("Expected 5.0 days, got %v", v.Clock().Days())
	}
	if v.Frames() != 10 {
		t.Errorf("Expected 10 frames, got %d", v.Frames())
	}

	planet := v.Scene().Find(kinematics.RolePlanet)
	want := kinematics.Position(planet.Body.Orbit, v.Clock().Days())
	if !approxVec(planet.World, want, 1e-9) {
		t.Errorf("Planet at %v, want %v", planet.World, want)
	}
}

func TestPauseAndReset(t *testing.T) {
	v := newTestViewer(t, DefaultOptions(), Deps{})
	ctx := context.Background()

	v.Step(ctx, 0.1)
	v.Apply(ctx, input.ActionTogglePause)
	before := v.Clock().Days()
	for i := 0; i < 5; i++ {
		v.Step(ctx, 0.1)
	}
	if v.Clock().Days() != before {
		t.Errorf("Paused clock moved from %v to %v", before, v.Clock().Days())
	}

	v.Apply(ctx, input.ActionReset)
	if v.Clock().Days() != 0 {
		t.Errorf("Reset should zero the clock, got %v", v.Clock().Days())
	}
	if !v.Clock().IsPaused() {
		t.Error("Reset should keep pause state")
	}

	planet := v.Scene().Find(kinematics.RolePlanet)
	want := vmath.Vec3F{X: scene.DefaultPlanetOrbit}
	if planet.World != want {
		t.Errorf("Reset pose should be exact, got %v", planet.World)
	}
}

func TestSpeedActions(t *testing.T) {
	v := newTestViewer(t, DefaultOptions(), Deps{})
	ctx := context.Background()

	v.Apply(ctx, input.ActionSpeedUp)
	if v.Clock().Speed() != 2 {
		t.Errorf("Expected speed 2 after one step up, got %v", v.Clock().Speed())
	}
	for i := 0; i < 20; i++ {
		v.Apply(ctx, input.ActionSpeedDown)
	}
	if v.Clock().Speed() != MinSpeed {
		t.Errorf("Speed should floor at %v, got %v", MinSpeed, v.Clock().Speed())
	}
}

func TestFocusModeLocksSpeedAndTracksPlanet(t *testing.T) {
	opts := DefaultOptions()
	opts.InitialSpeed = 10
	v := newTestViewer(t, opts, Deps{})
	ctx := context.Background()

	v.Apply(ctx, input.ActionToggleCamera)
	if v.Camera().Mode() != camera.ModeFocus {
		t.Fatalf("Expected focus mode, got %s", v.Camera().Mode())
	}
	if v.Clock().Speed() != 0.1 || !v.Clock().IsLocked() {
		t.Errorf("Focus should lock speed to 0.1, got %v locked=%v", v.Clock().Speed(), v.Clock().IsLocked())
	}
	if v.Clock().UserSpeed() != 10 {
		t.Errorf("User speed should be kept, got %v", v.Clock().UserSpeed())
	}

	// Zero delta keeps the planet still while the camera settles
	for i := 0; i < 300; i++ {
		v.Step(ctx, 0)
	}
	planet := v.Scene().WorldPosition(kinematics.RolePlanet)
	if !approxVec(v.Camera().Target, planet, 0.01) {
		t.Errorf("Camera target %v did not settle on planet %v", v.Camera().Target, planet)
	}
	if math.Abs(v.Camera().Distance-15) > 0.01 {
		t.Errorf("Expected focus distance ~15, got %v", v.Camera().Distance)
	}

	v.Apply(ctx, input.ActionToggleCamera)
	if v.Clock().IsLocked() || v.Clock().Speed() != 10 {
		t.Errorf("Leaving focus should restore speed 10, got %v", v.Clock().Speed())
	}
}

func TestFocusWithoutLock(t *testing.T) {
	opts := DefaultOptions()
	opts.FocusLocksSpeed = false
	v := newTestViewer(t, opts, Deps{})

	v.Apply(context.Background(), input.ActionToggleCamera)
	if v.Clock().IsLocked() || v.Clock().Speed() != 1 {
		t.Errorf("Focus without lock should keep speed 1, got %v", v.Clock().Speed())
	}
}

func TestCameraActions(t *testing.T) {
	v := newTestViewer(t, DefaultOptions(), Deps{})
	ctx := context.Background()
	cam := v.Camera()

	v.Apply(ctx, input.ActionOrbitRight)
	if cam.Yaw <= 0 {
		t.Errorf("Orbit right should increase yaw, got %v", cam.Yaw)
	}
	v.Apply(ctx, input.ActionZoomIn)
	if cam.Zoom <= 1 {
		t.Errorf("Zoom in should increase zoom, got %v", cam.Zoom)
	}
	v.Apply(ctx, input.ActionResetView)
	if cam.Yaw != 0 || cam.Zoom != 1 {
		t.Errorf("ResetView should restore yaw/zoom, got %v/%v", cam.Yaw, cam.Zoom)
	}

	v.Apply(ctx, input.ActionToggleInfo)
	if !v.Info().IsVisible() {
		t.Error("Info toggle should show the panel")
	}
}

func TestAudioCues(t *testing.T) {
	sink := &countingSink{}
	player := audio.NewCuePlayerWithSink(audio.DefaultAudioConfig(), sink)
	if err := player.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	opts := DefaultOptions()
	opts.InitialSpeed = 50
	v := newTestViewer(t, opts, Deps{Audio: player})
	ctx := context.Background()

	v.Apply(ctx, input.ActionTogglePause)
	v.Apply(ctx, input.ActionTogglePause)
	v.Apply(ctx, input.ActionReset)
	v.Apply(ctx, input.ActionToggleCamera)
	if got := sink.count(); got != 4 {
		t.Errorf("Expected 4 cues (pause, resume, reset, mode), got %d", got)
	}

	// Leave focus so the 50 d/s speed applies, then cross the year boundary
	v.Apply(ctx, input.ActionToggleCamera)
	v.Step(ctx, 8)
	if v.Clock().Year() != 2 {
		t.Fatalf("Expected year 2, got %d", v.Clock().Year())
	}
	if got := sink.count(); got != 6 {
		t.Errorf("Expected mode and year cues, got %d total", got)
	}

	v.Apply(ctx, input.ActionToggleMute)
	if !v.HUD().Muted {
		t.Error("HUD should report muted")
	}
	before := sink.count()
	v.Apply(ctx, input.ActionReset)
	if sink.count() != before {
		t.Errorf("Muted player should not queue cues")
	}
}

func TestStepPublishesAndRecordsMetrics(t *testing.T) {
	metrics, err := telemetry.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}
	pub := &capturePublisher{}
	v := newTestViewer(t, DefaultOptions(), Deps{Metrics: metrics, Publisher: pub})
	ctx := context.Background()

	v.Step(ctx, 0.05)
	v.Apply(ctx, input.ActionReset)
	v.Step(ctx, 0.05)

	if len(pub.frames) != 2 {
		t.Fatalf("Expected 2 published frames, got %d", len(pub.frames))
	}
	f := pub.frames[1]
	if f.Year != 1 || f.Mode != "overview" || len(f.Bodies) != 4 {
		t.Errorf("Unexpected frame: %+v", f)
	}
	if f.Bodies[0].Role != "sun" {
		t.Errorf("Expected sun first, got %s", f.Bodies[0].Role)
	}

	if got := testutil.ToFloat64(metrics.Frames); got != 2 {
		t.Errorf("Expected 2 frames counted, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.Actions.WithLabelValues("reset")); got != 1 {
		t.Errorf("Expected 1 reset action, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.SimDays); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("Expected sim days 0.05, got %v", got)
	}
}

func TestHandleEventKeys(t *testing.T) {
	v := newTestViewer(t, DefaultOptions(), Deps{})
	ctx := context.Background()

	v.HandleEvent(ctx, tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !v.Clock().IsPaused() {
		t.Error("Space should pause")
	}
	v.HandleEvent(ctx, tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	v.HandleEvent(ctx, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if !v.Quitting() {
		t.Error("Ctrl-C should quit")
	}
}

func TestStepRendersToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	v := newTestViewer(t, DefaultOptions(), Deps{Screen: screen})
	v.Apply(context.Background(), input.ActionTogglePause)
	v.Step(context.Background(), 0.1)

	var sb strings.Builder
	for x := 0; x < 80; x++ {
		mainc, _, _, _ := screen.GetContent(x, 22)
		sb.WriteRune(mainc)
	}
	status := sb.String()
	if !strings.HasPrefix(status, " Day 0") {
		t.Errorf("Unexpected status row %q", status)
	}
	if !strings.Contains(status, "[PAUSED]") {
		t.Errorf("Status row missing pause badge: %q", status)
	}
}

func TestHeadlessComposes(t *testing.T) {
	v := newTestViewer(t, DefaultOptions(), Deps{})
	v.Step(context.Background(), 0.1)

	w, h := v.Buffer().Size()
	if w != headlessWidth || h != headlessHeight {
		t.Fatalf("Expected %dx%d headless buffer, got %dx%d", headlessWidth, headlessHeight, w, h)
	}
	if v.Buffer().Get(1, h-2).Rune != 'D' {
		t.Errorf("Headless frame missing status row")
	}
}

func TestRunStopsAtMaxFrames(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 240
	opts.MaxFrames = 3
	v := newTestViewer(t, opts, Deps{Clock: clockwork.NewRealClock()})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.Run(ctx, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if v.Frames() != 3 {
		t.Errorf("Expected 3 frames, got %d", v.Frames())
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 240
	v := newTestViewer(t, opts, Deps{Clock: clockwork.NewRealClock()})

	events := make(chan tcell.Event, 1)
	events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.Run(ctx, events); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if ctx.Err() != nil {
		t.Error("Run should return on quit, not timeout")
	}
	if v.Frames() != 0 {
		t.Errorf("Quit before the first step should leave 0 frames, got %d", v.Frames())
	}
}

func TestRunStopsOnClosedEventsAndCancel(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 240
	v := newTestViewer(t, opts, Deps{Clock: clockwork.NewRealClock()})

	events := make(chan tcell.Event)
	close(events)
	if err := v.Run(context.Background(), events); err != nil {
		t.Errorf("Run with closed events failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := v.Run(ctx, nil); err != nil {
		t.Errorf("Run with cancelled context failed: %v", err)
	}
}

func TestRunCrashHandler(t *testing.T) {
	opts := DefaultOptions()
	opts.FPS = 240
	var recovered any
	v := newTestViewer(t, opts, Deps{
		Clock:        clockwork.NewRealClock(),
		Publisher:    panicPublisher{},
		CrashHandler: func(r any) { recovered = r },
	})

	err := v.Run(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected error after crash")
	}
	if recovered != "publish exploded" {
		t.Errorf("Crash handler got %v", recovered)
	}
}
