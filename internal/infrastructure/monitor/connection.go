package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/taskboard/backend/internal/bus"
	"github.com/taskboard/backend/internal/infrastructure/boltdb"
	"github.com/taskboard/backend/internal/infrastructure/journal"
)

// Monitor periodically checks the entity store and journal and keeps a
// snapshot for the health endpoint.
type Monitor struct {
	store   *boltdb.Client
	journal *journal.Store
	bus     *bus.Bus

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store *boltdb.Client, jrnl *journal.Store, b *bus.Bus, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		journal:  jrnl,
		bus:      b,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// IsOnline reports whether the entity store is usable. The journal is
// optional and does not affect readiness.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	journalOK, journalSize := m.checkJournal()
	status := Status{
		Store:       m.checkStore(),
		Journal:     journalOK,
		JournalSize: journalSize,
		LastCheck:   time.Now(),
	}
	if m.bus != nil {
		status.Subscribers = m.bus.SubscriberCount()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStore() bool {
	if m.store == nil {
		return false
	}
	if err := m.store.Ping(); err != nil {
		m.logger.Warn("entity store check failed", zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkJournal() (bool, int) {
	if m.journal == nil {
		return false, 0
	}
	size, err := m.journal.Size()
	if err != nil {
		m.logger.Warn("journal size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
