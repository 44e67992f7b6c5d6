package control

import "sync/atomic"

// Panel publishes Settings from one writer to any number of readers.
type Panel struct {
	limits   Limits
	settings atomic.Pointer[Settings]
}

func NewPanel(initial Settings, limits Limits) *Panel {
	p := &Panel{limits: limits}
	s := limits.Clamp(initial)
	p.settings.Store(&s)
	return p
}

// Snapshot returns the current settings by value.
func (p *Panel) Snapshot() Settings {
	return *p.settings.Load()
}

// Update applies fn to a copy of the current settings, clamps it and
// publishes it. Concurrent updates are retried so none is lost.
func (p *Panel) Update(fn func(*Settings)) Settings {
	for {
		old := p.settings.Load()
		next := *old
		fn(&next)
		next = p.limits.Clamp(next)
		if p.settings.CompareAndSwap(old, &next) {
			return next
		}
	}
}

func (p *Panel) Limits() Limits { return p.limits }
