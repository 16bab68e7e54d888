// Package worker contains background deliveries that run beside the HTTP
// server.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"trackwise/config"
	"trackwise/internal/usecase"

	"go.uber.org/fx"
)

const defaultWarmInterval = 10 * time.Minute

const warmJobID = "weather_cache_warm"

// JobInfo describes one scheduled background job for the admin API.
type JobInfo struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
	NextRun  *time.Time    `json:"next_run_time,omitempty"`
	Paused   bool          `json:"paused"`
}

// Scheduler exposes runtime inspection and control over background jobs.
type Scheduler interface {
	// Jobs lists the scheduled jobs and their next run times.
	Jobs() []JobInfo

	// Running reports whether the job loop is active.
	Running() bool

	// Pause suspends job execution; the loop keeps ticking.
	Pause()

	// Resume lifts a pause.
	Resume()
}

// CacheWarmWorker periodically re-fetches weather for configured locations
// so interactive requests hit a warm cache.
type CacheWarmWorker struct {
	cfg       *config.Config
	weatherUc usecase.WeatherUsecase
	logger    *slog.Logger
	stop      chan struct{}

	mu      sync.Mutex
	running bool
	paused  bool
	nextRun time.Time
}

// CacheWarmParams holds dependencies for the cache-warm worker, injected by Fx.
type CacheWarmParams struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	WeatherUc usecase.WeatherUsecase
	Logger    *slog.Logger
}

// NewCacheWarmWorker creates the cache-warm worker and ties it to the fx
// lifecycle.
func NewCacheWarmWorker(params CacheWarmParams) (*CacheWarmWorker, error) {
	worker := &CacheWarmWorker{
		cfg:       params.Config,
		weatherUc: params.WeatherUc,
		logger:    params.Logger,
		stop:      make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			close(worker.stop)

			return nil
		},
	})

	return worker, nil
}

// Serve runs the warm loop until the lifecycle stops it. A disabled or
// unconfigured scheduler exits immediately without error.
func (w *CacheWarmWorker) Serve(ctx context.Context) error {
	scheduler := w.cfg.Scheduler
	if scheduler == nil || !scheduler.Enabled || len(scheduler.WarmLocations) == 0 {
		w.logger.Info("Cache-warm worker disabled")

		return nil
	}

	interval := w.interval()

	w.logger.Info("Starting cache-warm worker",
		slog.Duration("interval", interval),
		slog.Int("locations", len(scheduler.WarmLocations)))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.setRunning(true)
	defer w.setRunning(false)

	// Warm once at startup so the first requests are already served from
	// cache.
	w.warm(ctx, scheduler.WarmLocations)

	for {
		select {
		case <-ticker.C:
			w.warm(ctx, scheduler.WarmLocations)
		case <-w.stop:
			w.logger.Info("Stopping cache-warm worker")

			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// warm refreshes the cache unless the scheduler is paused, and records the
// next tick time for the admin API.
func (w *CacheWarmWorker) warm(ctx context.Context, locations []string) {
	w.mu.Lock()
	paused := w.paused
	w.nextRun = time.Now().Add(w.interval())
	w.mu.Unlock()

	if paused {
		return
	}

	w.weatherUc.WarmCache(ctx, locations)
}

func (w *CacheWarmWorker) interval() time.Duration {
	if w.cfg.Scheduler != nil && w.cfg.Scheduler.Interval > 0 {
		return w.cfg.Scheduler.Interval
	}

	return defaultWarmInterval
}

func (w *CacheWarmWorker) setRunning(running bool) {
	w.mu.Lock()
	w.running = running
	w.mu.Unlock()
}

// Jobs lists the scheduled jobs. A worker that never started, because the
// scheduler is disabled, lists nothing.
func (w *CacheWarmWorker) Jobs() []JobInfo {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return []JobInfo{}
	}

	job := JobInfo{
		ID:       warmJobID,
		Name:     "Weather cache warm",
		Interval: w.interval(),
		Paused:   w.paused,
	}
	if !w.nextRun.IsZero() {
		nextRun := w.nextRun
		job.NextRun = &nextRun
	}

	return []JobInfo{job}
}

// Running reports whether the warm loop is active.
func (w *CacheWarmWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// Pause suspends cache warming. The loop keeps ticking so Resume takes
// effect on the next interval.
func (w *CacheWarmWorker) Pause() {
	w.mu.Lock()
	w.paused = true
	w.mu.Unlock()

	w.logger.Info("Cache-warm worker paused")
}

// Resume lifts a pause.
func (w *CacheWarmWorker) Resume() {
	w.mu.Lock()
	w.paused = false
	w.mu.Unlock()

	w.logger.Info("Cache-warm worker resumed")
}
