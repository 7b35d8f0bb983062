package domain

import "time"

// UserRole роль пользователя в системе
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RolePainter  UserRole = "painter"
)

// Valid проверяет, что роль известна системе
func (r UserRole) Valid() bool {
	return r == RoleCustomer || r == RolePainter
}

// User пользователь системы
// Rating и связанные с расписанием поля имеют смысл только для маляров
type User struct {
	ID     string
	Name   string
	Email  string
	Phone  *string
	Role   UserRole
	Rating float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPainter возвращает true, если пользователь - маляр
func (u *User) IsPainter() bool {
	return u.Role == RolePainter
}
