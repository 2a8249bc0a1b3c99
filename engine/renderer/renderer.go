package renderer

import (
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is what a Renderer presents into. engine/window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer clears and presents a window surface once per frame.
// The clear colour is the only thing drawn; callers change it to visualise state.
type Renderer interface {
	// Resize reconfigures the surface after the window framebuffer changes size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetClearColor sets the colour used by the next Draw.
	//
	// Parameters:
	//   - c: the clear colour
	SetClearColor(c Color)

	// ClearColor returns the current clear colour.
	ClearColor() Color

	// SetPresentMode changes how frames are delivered. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Draw clears the surface to the clear colour and presents it.
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired
	Draw() error

	// Release frees the GPU objects. The renderer cannot be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer presenting into surface.
//
// Parameters:
//   - backendType: the graphics backend to use
//   - surface: the window to present into
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the newly created renderer
//   - error: error if no adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		presentMode: PresentModeVSync,
	}

	// Apply options first so forceFallbackAdapter is known before the adapter request.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetClearColor(c Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = c
}

func (r *renderer) ClearColor() Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Draw() error {
	if err := r.backend.BeginFrame(r.ClearColor()); err != nil {
		return err
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
