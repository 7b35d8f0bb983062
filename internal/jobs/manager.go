package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Manager управляет фоновыми задачами по расписанию
type Manager struct {
	cron   *cron.Cron
	logger Logger
}

// NewManager создает менеджер фоновых задач
func NewManager(logger Logger) *Manager {
	return &Manager{
		cron:   cron.New(),
		logger: logger,
	}
}

// RegisterAvailabilityCleanup регистрирует ежедневную очистку истекших слотов
func (m *Manager) RegisterAvailabilityCleanup(job *AvailabilityCleanupJob) error {
	if _, err := m.cron.AddJob(availabilityCleanupSchedule, job); err != nil {
		return fmt.Errorf("jobs: failed to register availability cleanup: %w", err)
	}
	return nil
}

// Start запускает планировщик в фоне
func (m *Manager) Start() {
	m.cron.Start()
	m.logger.Info("Jobs: scheduler started")
}

// Stop останавливает планировщик и дожидается завершения запущенных задач
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info("Jobs: scheduler stopped")
}
