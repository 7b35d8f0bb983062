package jobs

import (
	"context"
	"time"
)

// Ежедневно в 03:00, в окно минимальной нагрузки
const availabilityCleanupSchedule = "0 3 * * *"

const cleanupTimeout = 5 * time.Minute

// AvailabilityCleanupJob удаляет слоты доступности, закончившиеся раньше
// порога хранения. Бронирования не трогаем: они остаются историей
type AvailabilityCleanupJob struct {
	cleaner       AvailabilityCleaner
	retentionDays int
	logger        Logger
}

// NewAvailabilityCleanupJob создает задачу очистки истекших слотов
func NewAvailabilityCleanupJob(cleaner AvailabilityCleaner, retentionDays int, logger Logger) *AvailabilityCleanupJob {
	return &AvailabilityCleanupJob{
		cleaner:       cleaner,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Run выполняет одну итерацию очистки
func (j *AvailabilityCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)

	deleted, err := j.cleaner.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("AvailabilityCleanup: failed to delete expired slots: %v", err)
		return
	}

	j.logger.Info("AvailabilityCleanup: deleted %d slots ended before %s",
		deleted, cutoff.Format("2006-01-02"))
}
