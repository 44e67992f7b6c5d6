package sim

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop runs an engine at a fixed rate and publishes the latest snapshot.
type Loop struct {
	engine *Engine
	hz     int
	snapCh chan Snapshot
	paused func() bool
	log    *zap.Logger
}

type LoopOption func(*Loop)

// WithPause makes the loop skip frames while paused reports true.
func WithPause(paused func() bool) LoopOption {
	return func(l *Loop) { l.paused = paused }
}

func WithLoopLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

func NewLoop(engine *Engine, hz int, opts ...LoopOption) *Loop {
	if hz <= 0 {
		hz = 60
	}
	l := &Loop{
		engine: engine,
		hz:     hz,
		snapCh: make(chan Snapshot, 1),
		paused: func() bool { return false },
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) Hz() int { return l.hz }

// Snapshots receives the most recent frame. Stale frames are dropped.
func (l *Loop) Snapshots() <-chan Snapshot { return l.snapCh }

// Start ticks until ctx is cancelled and returns ctx.Err().
func (l *Loop) Start(ctx context.Context) error {
	l.log.Info("loop started", zap.Int("hz", l.hz))
	defer l.log.Info("loop stopped")

	period := time.Second / time.Duration(l.hz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if l.paused() {
				continue
			}
			l.step(elapsed)
		}
	}
}

func (l *Loop) step(elapsed time.Duration) {
	snap, err := l.engine.Frame(elapsed)
	if err != nil {
		l.log.Warn("frame failed", zap.Error(err))
	}
	l.publish(snap)
}

func (l *Loop) publish(snap Snapshot) {
	select {
	case l.snapCh <- snap:
	default:
		select {
		case <-l.snapCh:
		default:
		}
		select {
		case l.snapCh <- snap:
		default:
		}
	}
}
