package render

import (
	"github.com/gdamore/tcell/v2"
)

type passEntry struct {
	pass     Pass
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	buffer   *Buffer
	passes   []passEntry
	regCount int
}

// NewRenderOrchestrator creates an orchestrator with an empty buffer of the given size
func NewRenderOrchestrator(width, height int) *RenderOrchestrator {
	return &RenderOrchestrator{
		buffer: NewBuffer(width, height),
		passes: make([]passEntry, 0, 8),
	}
}

// NewSceneOrchestrator registers the standard passes: stars, orbit paths, bodies, HUD, info panel
func NewSceneOrchestrator(width, height int, stars *Starfield, info *InfoPanel) *RenderOrchestrator {
	o := NewRenderOrchestrator(width, height)
	o.Register(PassFunc(func(ctx RenderContext, buf *Buffer) {
		stars.Draw(buf, ctx.View)
	}), PriorityBackground)
	o.Register(PassFunc(func(ctx RenderContext, buf *Buffer) {
		for _, n := range ctx.Scene.Nodes() {
			DrawOrbit(buf, ctx.View, n)
		}
	}), PriorityOrbits)
	o.Register(PassFunc(func(ctx RenderContext, buf *Buffer) {
		DrawBodies(buf, ctx.View, ctx.Scene)
	}), PriorityBodies)
	o.Register(PassFunc(func(ctx RenderContext, buf *Buffer) {
		DrawHUD(buf, ctx.HUD)
	}), PriorityUI)
	if info != nil {
		o.Register(info, PriorityOverlay)
	}
	return o
}

// Register adds a pass at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(p Pass, priority RenderPriority) {
	entry := passEntry{
		pass:     p,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.passes)
	for i, e := range o.passes {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.passes = append(o.passes, passEntry{})
	copy(o.passes[pos+1:], o.passes[pos:])
	o.passes[pos] = entry
}

// Resize updates buffer dimensions
func (o *RenderOrchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
}

// Buffer exposes the composed frame, mainly for tests and headless snapshots
func (o *RenderOrchestrator) Buffer() *Buffer {
	return o.buffer
}

// Compose clears the buffer and runs every visible pass in priority order
func (o *RenderOrchestrator) Compose(ctx RenderContext) {
	if w, h := o.buffer.Size(); w != ctx.ScreenWidth || h != ctx.ScreenHeight {
		o.buffer.Resize(ctx.ScreenWidth, ctx.ScreenHeight)
	}
	o.buffer.Clear()

	for _, entry := range o.passes {
		if vt, ok := entry.pass.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.pass.Render(ctx, o.buffer)
	}
}

// RenderFrame composes the frame and flushes it to screen
func (o *RenderOrchestrator) RenderFrame(ctx RenderContext, screen tcell.Screen) {
	o.Compose(ctx)
	o.buffer.Flush(screen)
}
