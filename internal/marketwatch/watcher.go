// Package marketwatch polls the exchange for market data on a fixed
// interval and hands each snapshot to a subscriber.
package marketwatch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cryptopro-lab/cryptopro-client/internal/logger"
	"github.com/cryptopro-lab/cryptopro-client/internal/types"
	"github.com/cryptopro-lab/cryptopro-client/pkg/errors"
)

// DefaultInterval matches the refresh cadence of the market overview.
const DefaultInterval = 15 * time.Second

// Source fetches the current market snapshot.
type Source interface {
	GetMarketData(ctx context.Context) ([]types.MarketData, error)
}

// Handler receives each successfully fetched snapshot.
type Handler func([]types.MarketData)

type Option func(*Watcher)

func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// Watcher periodically refreshes market data. Fetches run on a single
// goroutine, so a slow response delays the next tick instead of stacking a
// second request on top of it.
type Watcher struct {
	source   Source
	handler  Handler
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewWatcher(source Source, handler Handler, options ...Option) (*Watcher, error) {
	if source == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "market data source is required")
	}
	if handler == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "handler is required")
	}

	w := &Watcher{
		source:   source,
		handler:  handler,
		interval: DefaultInterval,
	}
	for _, option := range options {
		option(w)
	}

	if w.logger == nil {
		l, err := logger.NewLogger()
		if err != nil {
			return nil, err
		}
		w.logger = l
	}

	return w, nil
}

// Start fetches once immediately, then refreshes on every interval until
// Stop is called or ctx is cancelled. Calling Start on a running watcher is
// a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.loop(ctx, w.done)
}

func (w *Watcher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	w.fetch(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetch(ctx)
		}
	}
}

func (w *Watcher) fetch(ctx context.Context) {
	data, err := w.source.GetMarketData(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("failed to refresh market data", zap.Error(err))
		}

		return
	}

	w.handler(data)
}

// Stop halts polling and waits for the in-flight fetch to finish. Stopping
// a watcher that is not running is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}
