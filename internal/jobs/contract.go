package jobs

import (
	"context"
	"time"
)

// AvailabilityCleaner интерфейс очистки истекших слотов доступности
type AvailabilityCleaner interface {
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
