package signaling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BioHazard786/huddle/internal/metrics"
	"github.com/BioHazard786/huddle/internal/monitor"
)

//go:generate go run go.uber.org/mock/mockgen -source=sweep.go -destination=../mocks/mock_sampler.go -package=mocks

const (
	DefaultSweepInterval = 30 * time.Second

	// DefaultMemoryWarnBytes is the heap size above which a sweep warns.
	DefaultMemoryWarnBytes uint64 = 500 << 20
)

// MemorySampler reports the current memory footprint.
type MemorySampler interface {
	Sample(ctx context.Context) (monitor.MemoryUsage, error)
}

// SweepReport describes one sweep.
type SweepReport struct {
	Evicted       []string
	Stats         Stats
	Memory        monitor.MemoryUsage
	OverThreshold bool
}

// Sweeper periodically evicts rooms left empty and checks memory usage.
// Leave handling already evicts rooms as they empty; the sweep reconciles
// anything that slipped past it.
type Sweeper struct {
	hub       *Hub
	sampler   MemorySampler
	interval  time.Duration
	warnBytes uint64
	log       *slog.Logger
	metrics   *metrics.Metrics
}

func NewSweeper(hub *Hub, sampler MemorySampler, interval time.Duration, warnBytes uint64, log *slog.Logger, m *metrics.Metrics) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if warnBytes == 0 {
		warnBytes = DefaultMemoryWarnBytes
	}
	return &Sweeper{
		hub:       hub,
		sampler:   sampler,
		interval:  interval,
		warnBytes: warnBytes,
		log:       log,
		metrics:   m,
	}
}

// Run schedules sweeps until ctx is cancelled, then waits for a running
// sweep to finish.
func (s *Sweeper) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("Sweep failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}

	c.Start()
	s.log.Debug("Sweeper started", "interval", s.interval)
	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Debug("Sweeper stopped")
	return nil
}

// RunOnce evicts empty rooms and samples memory.
func (s *Sweeper) RunOnce(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	err := s.hub.Do(ctx, func(reg *Registry) {
		report.Evicted = reg.SweepEmptyRooms()
		report.Stats = reg.Stats()
	})
	if err != nil {
		return report, err
	}
	for _, id := range report.Evicted {
		s.metrics.RoomEvicted("sweep")
		s.log.Info("Room deleted", "room", id, "path", "sweep")
	}
	s.metrics.SweepCompleted()

	usage, err := s.sampler.Sample(ctx)
	if err != nil {
		// Heap figures are still usable without RSS.
		s.log.Debug("Memory sample incomplete", "err", err)
	}
	report.Memory = usage
	s.metrics.ObserveMemory(usage.HeapUsed, usage.RSS)

	if usage.HeapUsed > s.warnBytes {
		report.OverThreshold = true
		s.metrics.MemoryWarning()
		s.log.Warn("High memory usage",
			"heapUsed", usage.HeapUsed,
			"threshold", s.warnBytes,
			"rooms", report.Stats.TotalRooms,
			"participants", report.Stats.TotalParticipants,
		)
	}
	return report, nil
}
