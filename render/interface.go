package render

// Pass is one layer of the frame pipeline
type Pass interface {
	Render(ctx RenderContext, buf *Buffer)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}

// PassFunc adapts a plain function to Pass
type PassFunc func(ctx RenderContext, buf *Buffer)

// Render calls f
func (f PassFunc) Render(ctx RenderContext, buf *Buffer) {
	f(ctx, buf)
}
