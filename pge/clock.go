package pge

import (
	"time"

	"testpge/misc"
)

// Clock measures wall time between frames.
type Clock struct {
	now     func() time.Time
	last    time.Time
	started bool

	Total time.Duration
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick returns the time since the previous Tick.
// The first Tick returns 0.
func (c *Clock) Tick() time.Duration {
	now := c.now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}

	elapsed := now.Sub(c.last)
	c.last = now

	// wall clock went backwards
	if elapsed < 0 {
		elapsed = 0
	}

	c.Total += elapsed
	return elapsed
}

type Timer struct {
	Duration time.Duration
	Current  time.Duration
}

func (t *Timer) TickUp(delta time.Duration) {
	t.Current += delta
}

func (t *Timer) TickDown(delta time.Duration) {
	t.Current -= delta
}

// FPSCounter counts frames over each Timer.Duration, one second by default.
type FPSCounter struct {
	Timer  Timer
	frames int

	FPS int
}

// Add records a frame that took elapsed.
// It returns true when FPS was just updated.
func (f *FPSCounter) Add(elapsed time.Duration) bool {
	if f.Timer.Duration <= 0 {
		f.Timer.Duration = time.Second
	}

	f.frames++
	f.Timer.TickUp(elapsed)

	if f.Timer.Current < f.Timer.Duration {
		return false
	}

	f.FPS = f.frames
	f.frames = 0
	f.Timer.TickDown(f.Timer.Duration)
	// a long stall counts once
	f.Timer.Current %= f.Timer.Duration

	return true
}

// Timer for profiling.
// Usage :
//
//	{
//		timer := NewProfTimer("some function")
//		defer timer.Report()
//		// reports some function took 10ms
//	}
type ProfTimer struct {
	Start time.Time
	Name  string
}

func NewProfTimer(name string) ProfTimer {
	return ProfTimer{
		Start: time.Now(),
		Name:  name,
	}
}

func (p ProfTimer) Report() {
	now := time.Now()
	misc.InfoLogger.Printf("\"%v\" took %v\n", p.Name, now.Sub(p.Start))
}
