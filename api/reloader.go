/*
reloader.go - Periodic holiday calendar refresh

PURPOSE:
  Keeps the handler's calendar snapshot current when holidays change outside
  this process: an operator editing the overrides file, or another instance
  writing to a shared Postgres store.

DESIGN:
  - Runs a background goroutine with a configurable interval
  - Each tick re-reads the base sources, then rebuilds the snapshot from the store
  - A failed tick is logged and the previous snapshot stays active

USAGE:
  reloader := NewCalendarReloader(handler, sources, time.Minute, logger)
  reloader.Start()
  // ... later
  reloader.Stop()

SEE ALSO:
  - handlers.go: LoadHolidays, SetBase
  - calendar/yaml.go: Overrides file loader
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/warp/vacation-pay/calendar"
	"go.uber.org/zap"
)

// Source produces one base holiday list (built-in defaults, an overrides file).
type Source func() ([]calendar.Holiday, error)

// StaticSource always returns holidays.
func StaticSource(holidays []calendar.Holiday) Source {
	return func() ([]calendar.Holiday, error) { return holidays, nil }
}

// FileSource re-reads a YAML overrides file on every call.
func FileSource(path string) Source {
	return func() ([]calendar.Holiday, error) { return calendar.LoadYAML(path) }
}

// LoadSources evaluates every source in order.
func LoadSources(sources []Source) ([][]calendar.Holiday, error) {
	lists := make([][]calendar.Holiday, 0, len(sources))
	for _, src := range sources {
		hs, err := src()
		if err != nil {
			return nil, err
		}
		lists = append(lists, hs)
	}
	return lists, nil
}

// CalendarReloader refreshes a Handler's calendar on an interval.
type CalendarReloader struct {
	Handler  *Handler
	Sources  []Source
	Interval time.Duration
	Logger   *zap.Logger

	ticker   *time.Ticker
	stop     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	reloadMu sync.Mutex
}

// NewCalendarReloader creates a reloader. An interval <= 0 disables it.
func NewCalendarReloader(h *Handler, sources []Source, interval time.Duration, logger *zap.Logger) *CalendarReloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarReloader{
		Handler:  h,
		Sources:  sources,
		Interval: interval,
		Logger:   logger,
	}
}

// Start begins periodic reloads.
func (cr *CalendarReloader) Start() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.Interval <= 0 {
		cr.Logger.Info("Calendar reloader disabled")
		return
	}
	if cr.ticker != nil {
		return
	}

	cr.ticker = time.NewTicker(cr.Interval)
	cr.stop = make(chan struct{})
	cr.wg.Add(1)

	go cr.run(cr.ticker, cr.stop)

	cr.Logger.Info("Calendar reloader started", zap.Duration("interval", cr.Interval))
}

// Stop stops the reloader and waits for an in-flight reload to finish.
func (cr *CalendarReloader) Stop() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.ticker != nil {
		cr.ticker.Stop()
		close(cr.stop)
		cr.wg.Wait()
		cr.ticker = nil
		cr.Logger.Info("Calendar reloader stopped")
	}
}

func (cr *CalendarReloader) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer cr.wg.Done()

	for {
		select {
		case <-ticker.C:
			if err := cr.Reload(context.Background()); err != nil {
				cr.Logger.Warn("Calendar reload failed, keeping previous calendar", zap.Error(err))
			}
		case <-stop:
			return
		}
	}
}

// Reload re-reads every source and the store once. Concurrent calls run in turn.
func (cr *CalendarReloader) Reload(ctx context.Context) error {
	cr.reloadMu.Lock()
	defer cr.reloadMu.Unlock()

	lists, err := LoadSources(cr.Sources)
	if err != nil {
		return err
	}
	cr.Handler.SetBase(lists...)
	return cr.Handler.LoadHolidays(ctx)
}
