package renderer

// RendererBackendType identifies the graphics API behind a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU renders through cogentcore/webgpu.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately.
	PresentModeUncapped
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RendererBackend is the API-specific half of a Renderer.
type RendererBackend interface {
	wgpuRendererBackend
}
