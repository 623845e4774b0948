package query

import (
	"context"
	"errors"
	"sync"
	"time"
)

// PagerState is the reveal state of a list view.
type PagerState string

const (
	PagerIdle      PagerState = "idle"
	PagerLoading   PagerState = "loading"
	PagerExhausted PagerState = "exhausted"
)

// ErrPagerClosed is returned by LoadMore after Close.
var ErrPagerClosed = errors.New("pager closed")

// Pager reveals a filtered list in batches. Reveals are delayed by a
// short fixed interval so the UI can show a loading affordance; the
// delay is cosmetic and is cancelled by context cancellation or Close,
// in which case nothing is revealed. While a reveal is pending,
// further LoadMore calls are no-ops.
type Pager struct {
	mu      sync.Mutex
	total   int
	visible int
	initial int
	batch   int
	delay   time.Duration
	state   PagerState
	done    chan struct{}
	once    sync.Once
}

// NewPager creates a pager over total items, revealing initial items
// immediately and batch items per LoadMore after delay.
func NewPager(total, initial, batch int, delay time.Duration) *Pager {
	if initial < 0 {
		initial = 0
	}
	if batch < 1 {
		batch = 1
	}
	p := &Pager{
		total:   total,
		initial: initial,
		batch:   batch,
		delay:   delay,
		done:    make(chan struct{}),
	}
	p.visible = min(initial, total)
	p.state = p.restState()
	return p
}

// restState is the non-loading state for the current counts.
// Callers must hold mu.
func (p *Pager) restState() PagerState {
	if p.visible >= p.total {
		return PagerExhausted
	}
	return PagerIdle
}

// Visible returns how many items are currently revealed.
func (p *Pager) Visible() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// State returns the current reveal state.
func (p *Pager) State() PagerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Reset re-targets the pager at a new total, collapsing back to the
// initial reveal. Used when the underlying filter changes. A reveal in
// flight still completes against the new total.
func (p *Pager) Reset(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.visible = min(p.initial, total)
	if p.state != PagerLoading {
		p.state = p.restState()
	}
}

// LoadMore reveals the next batch after the cosmetic delay. It blocks
// until the reveal lands or the wait is cancelled. Calls while a
// reveal is pending or after exhaustion return immediately.
func (p *Pager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.state != PagerIdle {
		p.mu.Unlock()
		return nil
	}
	p.state = PagerLoading
	timer := time.NewTimer(p.delay)
	p.mu.Unlock()

	select {
	case <-timer.C:
		p.mu.Lock()
		p.visible = min(p.visible+p.batch, p.total)
		p.state = p.restState()
		p.mu.Unlock()
		return nil
	case <-ctx.Done():
		timer.Stop()
		p.mu.Lock()
		p.state = p.restState()
		p.mu.Unlock()
		return ctx.Err()
	case <-p.done:
		timer.Stop()
		p.mu.Lock()
		p.state = p.restState()
		p.mu.Unlock()
		return ErrPagerClosed
	}
}

// Close cancels any pending reveal. The pager is still readable but
// further LoadMore calls fail with ErrPagerClosed.
func (p *Pager) Close() {
	p.once.Do(func() { close(p.done) })
}
