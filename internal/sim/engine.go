package sim

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/neoaces/arm/internal/arm"
	"github.com/neoaces/arm/internal/control"
)

// Engine serialises access to one arm and drives it from a control panel.
type Engine struct {
	mu    sync.Mutex
	arm   *arm.Arm
	panel *control.Panel
	scale float32
	t     float64
	log   *zap.Logger

	// applied holds the panel length and mass last written to the arm.
	applied control.Settings
}

type EngineOption func(*Engine)

func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithScale sets the world-to-pixel factor applied to snapshot segments.
func WithScale(s float32) EngineOption {
	return func(e *Engine) { e.scale = s }
}

func NewEngine(a *arm.Arm, panel *control.Panel, opts ...EngineOption) *Engine {
	e := &Engine{arm: a, panel: panel, scale: 1, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	e.applied = panel.Snapshot()
	return e
}

// Frame applies any length or mass edit made on the panel since the last
// frame to the selected link, then advances the arm by elapsed wall time
// scaled by the panel's time scale. Links the operator has not edited keep
// their configured size even when it lies outside the panel limits. On error
// the arm is unchanged and the returned snapshot reflects its prior state.
func (e *Engine) Frame(elapsed time.Duration) (Snapshot, error) {
	s := e.panel.Snapshot()

	e.mu.Lock()
	defer e.mu.Unlock()

	prev, err := e.arm.Couple(s.Link)
	if err != nil {
		return e.snapshotLocked(), fmt.Errorf("frame: %w", err)
	}
	restore := func() {
		// prev holds values the link already accepted once.
		_ = e.arm.SetLinkLength(s.Link, prev.Length)
		_ = e.arm.SetLinkMass(s.Link, prev.Mass)
	}

	if s.Length != e.applied.Length {
		if err := e.arm.SetLinkLength(s.Link, s.Length); err != nil {
			return e.snapshotLocked(), fmt.Errorf("frame: %w", err)
		}
	}
	if s.Mass != e.applied.Mass {
		if err := e.arm.SetLinkMass(s.Link, s.Mass); err != nil {
			restore()
			return e.snapshotLocked(), fmt.Errorf("frame: %w", err)
		}
	}

	dt := elapsed.Seconds() * float64(s.TimeScale)
	if err := e.arm.Advance(s.Current, float32(dt)); err != nil {
		restore()
		return e.snapshotLocked(), fmt.Errorf("frame: %w", err)
	}
	e.t += dt
	e.applied.Length, e.applied.Mass = s.Length, s.Mass

	return e.snapshotLocked(), nil
}

// Snapshot returns the arm state without advancing it.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// AddLink appends a link driven like the last one, sized from the panel's
// current length and mass.
func (e *Engine) AddLink(ratio float32) error {
	s := e.panel.Snapshot()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.arm.AddLink(s.Mass, s.Length, ratio); err != nil {
		return err
	}
	e.log.Info("link added", zap.Int("links", e.arm.Len()))
	return nil
}

func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arm.Reset()
	e.t = 0
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.arm.Len()
}

func (e *Engine) Panel() *control.Panel { return e.panel }

func (e *Engine) snapshotLocked() Snapshot {
	return capture(e.arm, e.t, e.scale)
}
