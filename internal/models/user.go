package models

// User описывает пользователя. Профиль ведётся вне этого сервиса,
// здесь пользователь нужен только как владелец избранного.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

// MaxEmailLength совпадает с размером колонки users.email.
const MaxEmailLength = 120
