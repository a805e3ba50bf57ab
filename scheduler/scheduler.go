// Package scheduler runs frame-aligned work: queued component updates,
// components animated on every frame and one-shot animation tasks.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vcrobe/vtree/vdom"
)

// Animation is a task run on every frame until it reports completion.
type Animation func() (done bool)

type animated struct {
	inst    *vdom.Instance
	enabled bool
}

// Scheduler batches component updates into frames. Calls that enqueue work
// are safe from any goroutine; Frame runs the queued work while holding the
// configured locker.
type Scheduler struct {
	mu         sync.Mutex
	animated   []*animated
	index      map[*vdom.Instance]*animated
	animations []Animation
	dirty      []*vdom.Instance
	queued     map[*vdom.Instance]struct{}
	frames     int

	locker sync.Locker
	logger *zap.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLocker makes Frame hold l while it updates components. Use it when the
// rendered tree is shared with other goroutines.
func WithLocker(l sync.Locker) Option {
	return func(s *Scheduler) { s.locker = l }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		index:  make(map[*vdom.Instance]*animated),
		queued: make(map[*vdom.Instance]struct{}),
		locker: noopLocker{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("scheduler")
	return s
}

// StartComponentAnimation updates inst on every frame until stopped.
func (s *Scheduler) StartComponentAnimation(inst *vdom.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.index[inst]; ok {
		a.enabled = true
		return
	}
	a := &animated{inst: inst, enabled: true}
	s.index[inst] = a
	s.animated = append(s.animated, a)
}

// StopComponentAnimation stops the per-frame updates of inst. The entry
// leaves the animated list during the next frame.
func (s *Scheduler) StopComponentAnimation(inst *vdom.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.index[inst]; ok {
		a.enabled = false
	}
}

// AddAnimation runs task on every frame until it returns true.
func (s *Scheduler) AddAnimation(task Animation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animations = append(s.animations, task)
}

// Invalidate queues inst for an update in the next frame. It implements
// vdom.Invalidator.
func (s *Scheduler) Invalidate(inst *vdom.Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.queued[inst]; ok {
		return
	}
	s.queued[inst] = struct{}{}
	s.dirty = append(s.dirty, inst)
}

// ShouldRequestNextFrame reports whether a frame has work to do.
func (s *Scheduler) ShouldRequestNextFrame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.animated) > 0 || len(s.animations) > 0 || len(s.dirty) > 0
}

// Frames returns the number of frames run so far.
func (s *Scheduler) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Frame runs one frame: animation tasks first, then queued and animated
// component updates. Each component is updated at most once per frame.
func (s *Scheduler) Frame() {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.executeAnimations()

	s.mu.Lock()
	s.frames++
	dirty := s.dirty
	s.dirty = nil
	clear(s.queued)
	s.mu.Unlock()

	updated := make(map[*vdom.Instance]struct{}, len(dirty))
	for _, inst := range dirty {
		updated[inst] = struct{}{}
		inst.Update()
	}
	for _, inst := range s.updateAnimated() {
		if _, ok := updated[inst]; !ok {
			inst.Update()
		}
	}
}

// executeAnimations runs every task once and drops finished tasks by moving
// the last task into their slot.
func (s *Scheduler) executeAnimations() {
	s.mu.Lock()
	tasks := s.animations
	s.animations = nil
	s.mu.Unlock()

	for i := 0; i < len(tasks); i++ {
		if tasks[i]() {
			last := len(tasks) - 1
			tasks[i] = tasks[last]
			tasks = tasks[:last]
			i--
		}
	}

	s.mu.Lock()
	s.animations = append(tasks, s.animations...)
	s.mu.Unlock()
}

// updateAnimated returns the enabled animated instances and removes disabled
// or disposed entries with swap-remove.
func (s *Scheduler) updateAnimated() []*vdom.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*vdom.Instance
	for i := 0; i < len(s.animated); i++ {
		a := s.animated[i]
		if a.enabled && !a.inst.Disposed() {
			out = append(out, a.inst)
			continue
		}
		delete(s.index, a.inst)
		last := len(s.animated) - 1
		s.animated[i] = s.animated[last]
		s.animated[last] = nil
		s.animated = s.animated[:last]
		i--
	}
	return out
}

// Run calls Frame every interval while there is work, until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.logger.Debug("frame loop started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("frame loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if s.ShouldRequestNextFrame() {
				s.Frame()
			}
		}
	}
}

// Close drops all pending work.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animated = nil
	s.animations = nil
	s.dirty = nil
	clear(s.index)
	clear(s.queued)
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}
