package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teamspace/backend/repository/memory"
)

// Monitor periodically snapshots workspace store statistics for the
// health endpoint. The stores are in-process, so there is nothing to
// probe for liveness; the snapshot exists for observability.
type Monitor struct {
	projects   *memory.ProjectStore
	users      *memory.UserStore
	activities *memory.ActivityStore

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	started  time.Time
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(projects *memory.ProjectStore, users *memory.UserStore, activities *memory.ActivityStore, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		projects:   projects,
		users:      users,
		activities: activities,
		interval:   interval,
		started:    time.Now(),
		stopCh:     make(chan struct{}),
		logger:     logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
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
	status := Status{
		Uptime:    time.Since(m.started),
		LastCheck: time.Now(),
	}
	if m.projects != nil {
		status.Projects = m.projects.Len()
		status.Listeners = m.projects.Listeners()
	}
	if m.users != nil {
		status.Users = m.users.Len()
	}
	if m.activities != nil {
		status.Activities = m.activities.Len()
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
