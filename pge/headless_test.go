package pge

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.ScreenWidth, cfg.ScreenHeight = 16, 16

	e, err := Construct(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRunHeadlessFrames(t *testing.T) {
	e := newTestEngine(t)
	app := &recordingApp{createResult: true}

	err := e.RunHeadless(context.Background(), app, HeadlessConfig{Frames: 5, Step: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	if app.creates != 1 || app.updates != 5 {
		t.Errorf("creates = %d, updates = %d, want 1 and 5", app.creates, app.updates)
	}
	if e.FrameCount() != 5 {
		t.Errorf("FrameCount = %d, want 5", e.FrameCount())
	}
	if app.elapsed[0] != 0 {
		t.Errorf("first elapsed = %v, want 0", app.elapsed[0])
	}
	for i, el := range app.elapsed[1:] {
		if el != float32((20 * time.Millisecond).Seconds()) {
			t.Errorf("elapsed[%d] = %v, want 0.02", i+1, el)
		}
	}
}

func TestRunHeadlessDraws(t *testing.T) {
	e := newTestEngine(t)

	app := AppFuncs{
		Update: func(c Canvas, elapsed float32) bool {
			c.FillRect(0, 0, c.Width(), c.Height(), DarkBlue)
			c.FillCircle(8, 8, 2, Cyan)
			return true
		},
	}

	if err := e.RunHeadless(context.Background(), app, HeadlessConfig{Frames: 1}); err != nil {
		t.Fatal(err)
	}

	if got := e.Sprite().RGBAAt(0, 0); got != DarkBlue {
		t.Errorf("corner = %v, want dark blue", got)
	}
	if got := e.Sprite().RGBAAt(8, 8); got != Cyan {
		t.Errorf("center = %v, want cyan", got)
	}
}

func TestRunHeadlessStop(t *testing.T) {
	e := newTestEngine(t)
	app := &recordingApp{createResult: true, stopAt: 3}

	err := e.RunHeadless(context.Background(), app, HeadlessConfig{Frames: 100})
	if err != nil {
		t.Fatalf("RunHeadless = %v, want nil when the application stops", err)
	}
	if app.updates != 3 {
		t.Errorf("updates = %d, want 3", app.updates)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	e := newTestEngine(t)
	app := &recordingApp{createResult: true}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.RunHeadless(ctx, app, HeadlessConfig{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunHeadless = %v, want context.Canceled", err)
	}
	if app.creates != 0 {
		t.Errorf("application created after cancellation")
	}
}

func TestRunHeadlessRealtime(t *testing.T) {
	e := newTestEngine(t)
	app := &recordingApp{createResult: true}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := e.RunHeadless(ctx, app, HeadlessConfig{Frames: 3, Step: time.Millisecond, Realtime: true})
	if err != nil {
		t.Fatal(err)
	}
	if app.updates != 3 {
		t.Errorf("updates = %d, want 3", app.updates)
	}
}

func TestRunHeadlessInvalid(t *testing.T) {
	e := newTestEngine(t)
	app := &recordingApp{createResult: true}

	if err := e.RunHeadless(context.Background(), app, HeadlessConfig{}); err == nil {
		t.Errorf("unbounded run without a context deadline succeeded")
	}
	if err := e.RunHeadless(context.Background(), app, HeadlessConfig{Frames: 1, Step: -time.Second}); err == nil {
		t.Errorf("negative step accepted")
	}
	if err := e.RunHeadless(context.Background(), nil, HeadlessConfig{Frames: 1}); err == nil {
		t.Errorf("nil application accepted")
	}
	if app.creates != 0 {
		t.Errorf("application ran on an invalid config")
	}
}
