package pge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"testpge/misc"

	eb "github.com/hajimehoshi/ebiten/v2"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// stop after this many frames, 0 runs until ctx is done
	Frames uint64

	// elapsed time reported to the application each frame,
	// 1/60 of a second when 0
	Step time.Duration

	// pace frames with a ticker instead of running them back to back
	Realtime bool
}

// RunHeadless drives app without opening a window.
// Frames are drawn into the sprite only, nothing is presented.
func (e *Engine) RunHeadless(ctx context.Context, app Application, hc HeadlessConfig) error {
	if app == nil {
		return errNilApplication
	}
	if hc.Step < 0 {
		return fmt.Errorf("invalid headless step: %v", hc.Step)
	}
	if hc.Step == 0 {
		hc.Step = time.Second / 60
	}
	if hc.Frames == 0 && ctx.Done() == nil {
		return errors.New("headless run with no frame limit would never stop")
	}

	e.app = app

	var tick <-chan time.Time
	if hc.Realtime {
		t := time.NewTicker(hc.Step)
		defer t.Stop()
		tick = t.C
	}

	misc.InfoLogger.Printf("running %s headless", e.cfg.Title)

	var elapsed time.Duration
	for hc.Frames == 0 || e.frameCount < hc.Frames {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		err := e.frame(elapsed)
		if errors.Is(err, eb.Termination) {
			return nil
		}
		if err != nil {
			return err
		}

		// the first frame sees 0 like in a window
		elapsed = hc.Step
	}

	return nil
}
