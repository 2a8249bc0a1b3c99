// Package engine runs the fixed-rate simulation loop that ticks the rig, the
// walker and the physics world, plus an optional render loop.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/engine/profiler"
)

// System is anything the engine advances once per tick.
// rig.RigController, locomotion.Walker and physics.World all satisfy it.
type System interface {
	Tick(deltaTime float32)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(deltaTime float32)

// Tick calls f(deltaTime).
func (f SystemFunc) Tick(deltaTime float32) {
	f(deltaTime)
}

// Host is the platform window the engine pumps on the calling thread.
// engine/window.Window satisfies it.
type Host interface {
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
}

// Resizer is implemented by systems that track the window framebuffer size.
type Resizer interface {
	Resize(width, height int)
}

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window Host
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	systems map[int]System

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the attached window, or nil when running headless.
	//
	// Returns:
	//   - Host: the window instance
	Window() Host

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers a function called each tick after all systems.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame.
	// The render loop only runs when a render callback is set.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddSystem registers a system at the given key.
	// Systems tick in ascending key order, so input consumers should sit below
	// the systems that read their output.
	//
	// Parameters:
	//   - key: the order key (lower ticks first)
	//   - s: the System to register
	AddSystem(key int, s System)

	// RemoveSystem removes the system at the given key.
	//
	// Parameters:
	//   - key: the key of the system to remove
	RemoveSystem(key int)

	// System retrieves the system registered at the given key, or nil.
	//
	// Parameters:
	//   - key: the key of the system to retrieve
	//
	// Returns:
	//   - System: the system at the key, or nil if not found
	System(key int) System

	// Systems returns a copy of all registered systems keyed by order.
	//
	// Returns:
	//   - map[int]System: a copy of the systems map
	Systems() map[int]System

	// Step runs one tick synchronously with the given delta time.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Step(deltaTime float32)

	// Run starts the engine loops and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and unregisters every system.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		systems:          make(map[int]System),
		wg:               sync.WaitGroup{},
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		logger:           slog.Default(),
	}

	for _, opt := range options {
		opt(e)
	}
	e.profiler = profiler.NewProfiler(e.logger, time.Second)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			for _, s := range e.Systems() {
				if r, ok := s.(Resizer); ok {
					r.Resize(width, height)
				}
			}
		})
	}

	return e
}

func (e *engine) Window() Host {
	return e.window
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel and drops all systems.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		clear(e.systems)
		e.mu.Unlock()
		close(e.quitChannel)
		e.logger.Info("engine stopped")
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleQuit()
	if e.renderCallback != nil {
		e.wg.Add(1)
		go e.handleRender()
	}
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

func (e *engine) Step(deltaTime float32) {
	e.mu.Lock()
	keys := make([]int, 0, len(e.systems))
	for k := range e.systems {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	ordered := make([]System, len(keys))
	for i, k := range keys {
		ordered[i] = e.systems[k]
	}
	profiling := e.profilingEnabled
	tickCallback := e.tickCallback
	e.mu.Unlock()

	for i, s := range ordered {
		start := time.Now()
		s.Tick(deltaTime)
		if profiling {
			e.profiler.Observe(systemName(keys[i], s), time.Since(start))
		}
	}

	if tickCallback != nil {
		tickCallback(deltaTime)
	}

	if profiling {
		e.profiler.Tick()
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			e.renderCallback(dt)

			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback must be called before Run.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddSystem(key int, s System) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.systems[key] = s
}

func (e *engine) RemoveSystem(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.systems, key)
}

func (e *engine) System(key int) System {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.systems[key]
}

func (e *engine) Systems() map[int]System {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]System, len(e.systems))
	for k, v := range e.systems {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a rate to a ticker period, defaulting to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// systemName labels a system in profiler output.
func systemName(key int, s System) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%d:%T", key, s)
}
