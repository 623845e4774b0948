package query

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPagerInitialReveal(t *testing.T) {
	p := NewPager(25, 10, 10, time.Millisecond)
	defer p.Close()

	if p.Visible() != 10 {
		t.Errorf("Expected 10 visible, got %d", p.Visible())
	}
	if p.State() != PagerIdle {
		t.Errorf("Expected idle, got %s", p.State())
	}

	// Short lists are exhausted immediately.
	small := NewPager(3, 10, 10, time.Millisecond)
	defer small.Close()
	if small.Visible() != 3 || small.State() != PagerExhausted {
		t.Errorf("Expected 3 visible and exhausted, got %d/%s", small.Visible(), small.State())
	}
}

func TestPagerLoadMore(t *testing.T) {
	p := NewPager(25, 10, 10, time.Millisecond)
	defer p.Close()

	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if p.Visible() != 20 || p.State() != PagerIdle {
		t.Errorf("Expected 20 visible idle, got %d/%s", p.Visible(), p.State())
	}

	// Final batch is clamped to the total and exhausts the pager.
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	if p.Visible() != 25 || p.State() != PagerExhausted {
		t.Errorf("Expected 25 visible exhausted, got %d/%s", p.Visible(), p.State())
	}

	// Exhausted pager ignores further calls.
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore on exhausted pager errored: %v", err)
	}
	if p.Visible() != 25 {
		t.Errorf("Exhausted pager revealed more: %d", p.Visible())
	}
}

func TestPagerCancelledLoadRevealsNothing(t *testing.T) {
	p := NewPager(25, 10, 10, time.Hour)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.LoadMore(ctx) }()

	// Wait for the load to start, then cancel the cosmetic delay.
	for p.State() != PagerLoading {
		time.Sleep(time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if p.Visible() != 10 {
		t.Errorf("Cancelled load revealed items: %d", p.Visible())
	}
	if p.State() != PagerIdle {
		t.Errorf("Expected idle after cancel, got %s", p.State())
	}
}

func TestPagerCloseCancelsPendingLoad(t *testing.T) {
	p := NewPager(25, 10, 10, time.Hour)

	errCh := make(chan error, 1)
	go func() { errCh <- p.LoadMore(context.Background()) }()

	for p.State() != PagerLoading {
		time.Sleep(time.Millisecond)
	}
	p.Close()

	if err := <-errCh; !errors.Is(err, ErrPagerClosed) {
		t.Fatalf("Expected ErrPagerClosed, got %v", err)
	}
	if p.Visible() != 10 {
		t.Errorf("Closed pager revealed items: %d", p.Visible())
	}

	if err := p.LoadMore(context.Background()); !errors.Is(err, ErrPagerClosed) {
		t.Errorf("Expected ErrPagerClosed after close, got %v", err)
	}
}

func TestPagerConcurrentLoadMoreIsNoOp(t *testing.T) {
	p := NewPager(25, 10, 10, 50*time.Millisecond)
	defer p.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- p.LoadMore(context.Background()) }()

	for p.State() != PagerLoading {
		time.Sleep(time.Millisecond)
	}
	// A second call while loading returns immediately with no effect.
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("Concurrent LoadMore errored: %v", err)
	}

	if err := <-errCh; err != nil {
		t.Fatalf("First LoadMore failed: %v", err)
	}
	if p.Visible() != 20 {
		t.Errorf("Expected exactly one batch revealed, got %d visible", p.Visible())
	}
}

func TestPagerReset(t *testing.T) {
	p := NewPager(25, 10, 10, time.Millisecond)
	defer p.Close()

	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore failed: %v", err)
	}
	p.Reset(4)

	if p.Visible() != 4 || p.State() != PagerExhausted {
		t.Errorf("Expected collapse to 4 exhausted, got %d/%s", p.Visible(), p.State())
	}

	p.Reset(100)
	if p.Visible() != 10 || p.State() != PagerIdle {
		t.Errorf("Expected 10 visible idle after regrow, got %d/%s", p.Visible(), p.State())
	}
}
