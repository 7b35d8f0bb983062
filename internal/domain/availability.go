package domain

import "time"

// Availability объявленное маляром окно доступности
// Слоты одного маляра не могут пересекаться; слот не изменяется in place -
// для изменения владелец удаляет его и создает новый
type Availability struct {
	ID        string
	PainterID string
	Range     TimeRange

	CreatedAt time.Time
	UpdatedAt time.Time

	// Painter заполняется репозиторием при join'е с пользователями
	Painter *User
}

// AvailabilityFilter фильтр публичного поиска доступности
// Все поля опциональны; nil - без ограничения
type AvailabilityFilter struct {
	PainterID *string
	StartDate *time.Time // слоты, заканчивающиеся после этой даты
	EndDate   *time.Time // слоты, начинающиеся до этой даты
}
