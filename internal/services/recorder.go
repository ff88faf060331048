package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskboard/backend/domain"
	"github.com/taskboard/backend/internal/bus"
	"github.com/taskboard/backend/internal/infrastructure/journal"
)

// RecorderConfig controls journal retention.
type RecorderConfig struct {
	Retention     time.Duration
	PruneInterval time.Duration
}

// Recorder journals every event published on the bus. It subscribes to
// each kind like any other client, so recording cannot disturb delivery
// to real subscribers, and prunes old entries on a cron schedule.
type Recorder struct {
	bus    *bus.Bus
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RecorderConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRecorder(b *bus.Bus, store *journal.Store, logger *zap.Logger, cfg RecorderConfig) *Recorder {
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		bus:    b,
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(),
	}
}

// Start subscribes to every event kind and schedules retention pruning.
func (r *Recorder) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for _, kind := range domain.EventKinds() {
		events := r.bus.Subscribe(ctx, kind)
		r.wg.Add(1)
		go r.record(kind, events)
	}

	schedule := fmt.Sprintf("@every %ds", int(r.cfg.PruneInterval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, r.prune)
	r.cron.Start()
}

// Stop cancels the subscriptions and waits for in-flight appends.
func (r *Recorder) Stop(ctx context.Context) {
	if r.cancel != nil {
		r.cancel()
	}
	cronCtx := r.cron.Stop()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		<-cronCtx.Done()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.logger.Warn("recorder stop timed out")
	}
}

func (r *Recorder) record(kind domain.EventKind, events chan interface{}) {
	defer r.wg.Done()
	for payload := range events {
		if err := r.store.Append(kind, payload); err != nil {
			r.logger.Error("failed to journal event",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
	}
}

func (r *Recorder) prune() {
	cutoff := time.Now().Add(-r.cfg.Retention)
	removed, err := r.store.Prune(cutoff)
	if err != nil {
		r.logger.Error("journal prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		r.logger.Info("journal pruned", zap.Int("removed", removed))
	}
}
