package animation

import (
	"context"
	"sync"
	"time"
)

// Frame is one step of the ripple: the ring scale relative to the target
// and its opacity.
type Frame struct {
	Scale float32
	Alpha uint8
}

// Config contains ripple timing values.
type Config struct {
	Duration   time.Duration
	Frames     int
	StartScale float32
	EndScale   float32
	StartAlpha uint8
}

// Frame returns the ripple frame at step, easing scale out and fading alpha
// to zero on the last step.
func (config Config) Frame(step int) Frame {
	if config.Frames <= 1 {
		return Frame{Scale: config.EndScale, Alpha: 0}
	}
	if step < 0 {
		step = 0
	}
	if step > config.Frames-1 {
		step = config.Frames - 1
	}
	progress := float32(step) / float32(config.Frames-1)
	eased := 1 - (1-progress)*(1-progress)
	return Frame{
		Scale: config.StartScale + (config.EndScale-config.StartScale)*eased,
		Alpha: uint8(float32(config.StartAlpha) * (1 - progress)),
	}
}

func (config Config) frameInterval() time.Duration {
	if config.Frames <= 0 {
		return config.Duration
	}
	return config.Duration / time.Duration(config.Frames)
}

// Engine plays ripple frames on its own goroutine.
type Engine struct {
	mu     sync.Mutex
	config Config
	update func(Frame)
	cancel context.CancelFunc
}

// New creates a ripple engine that reports frames to update.
func New(config Config, update func(Frame)) *Engine {
	if config.Frames <= 0 {
		config.Frames = 1
	}
	return &Engine{
		config: config,
		update: update,
	}
}

// Config returns the engine timing values.
func (engine *Engine) Config() Config {
	return engine.config
}

// StartRipple plays the ripple from its first frame, replacing any ripple
// already in flight.
func (engine *Engine) StartRipple(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		interval := engine.config.frameInterval()
		for step := 0; step < engine.config.Frames; step++ {
			if runCtx.Err() != nil {
				return
			}
			engine.update(engine.config.Frame(step))
			if !sleepWithContext(runCtx, interval) {
				return
			}
		}
	})
}

// Stop terminates any active ripple.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
