package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"trackwise/config"
	"trackwise/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeWeatherUsecase records warm calls.
type fakeWeatherUsecase struct {
	mu    sync.Mutex
	warms [][]string
}

func (f *fakeWeatherUsecase) CurrentWeather(_ context.Context, location, units string) (*entity.CurrentWeather, error) {
	return &entity.CurrentWeather{Location: location, Units: units}, nil
}

func (f *fakeWeatherUsecase) WarmCache(_ context.Context, locations []string) {
	f.mu.Lock()
	f.warms = append(f.warms, locations)
	f.mu.Unlock()
}

func (f *fakeWeatherUsecase) warmCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.warms)
}

func createTestWorker(cfg *config.Config, weatherUc *fakeWeatherUsecase) *CacheWarmWorker {
	return &CacheWarmWorker{
		cfg:       cfg,
		weatherUc: weatherUc,
		logger:    testLogger,
		stop:      make(chan struct{}),
	}
}

func schedulerConfig(enabled bool, locations []string, interval time.Duration) *config.Config {
	return &config.Config{
		Scheduler: &config.SchedulerConfig{
			Enabled:       enabled,
			WarmLocations: locations,
			Interval:      interval,
		},
	}
}

func TestCacheWarmWorker_DisabledExitsImmediately(t *testing.T) {
	weatherUc := &fakeWeatherUsecase{}
	worker := createTestWorker(schedulerConfig(false, []string{"New York"}, time.Minute), weatherUc)

	require.NoError(t, worker.Serve(context.Background()))

	assert.Zero(t, weatherUc.warmCount())
	assert.False(t, worker.Running())
	assert.Empty(t, worker.Jobs())
}

func TestCacheWarmWorker_WarmsOnStartup(t *testing.T) {
	weatherUc := &fakeWeatherUsecase{}
	worker := createTestWorker(schedulerConfig(true, []string{"New York", "Brooklyn"}, time.Hour), weatherUc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Serve(ctx) }()

	require.Eventually(t, func() bool { return weatherUc.warmCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	jobs := worker.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "weather_cache_warm", jobs[0].ID)
	assert.Equal(t, time.Hour, jobs[0].Interval)
	assert.NotNil(t, jobs[0].NextRun)
	assert.True(t, worker.Running())

	weatherUc.mu.Lock()
	assert.Equal(t, []string{"New York", "Brooklyn"}, weatherUc.warms[0])
	weatherUc.mu.Unlock()

	cancel()
	require.NoError(t, <-done)
	assert.False(t, worker.Running())
}

func TestCacheWarmWorker_PauseSkipsWarm(t *testing.T) {
	weatherUc := &fakeWeatherUsecase{}
	worker := createTestWorker(schedulerConfig(true, []string{"New York"}, time.Hour), weatherUc)

	worker.Pause()
	worker.warm(context.Background(), []string{"New York"})
	assert.Zero(t, weatherUc.warmCount())

	worker.Resume()
	worker.warm(context.Background(), []string{"New York"})
	assert.Equal(t, 1, weatherUc.warmCount())
}

func TestCacheWarmWorker_JobsReportPausedState(t *testing.T) {
	weatherUc := &fakeWeatherUsecase{}
	worker := createTestWorker(schedulerConfig(true, []string{"New York"}, time.Hour), weatherUc)
	worker.setRunning(true)

	worker.Pause()
	jobs := worker.Jobs()
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Paused)

	worker.Resume()
	jobs = worker.Jobs()
	require.Len(t, jobs, 1)
	assert.False(t, jobs[0].Paused)
}
