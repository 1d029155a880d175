package common

import (
	"errors"

	"github.com/lib/pq"
)

// Общие ошибки для всех репозиториев
var (
	ErrAlreadyExists     = errors.New("entity already exists")
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

// Коды ошибок PostgreSQL, которые имеют смысл для вызывающего кода.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// TranslatePQError превращает нарушения ограничений в общие ошибки репозитория.
// Остальные ошибки возвращаются без изменений.
func TranslatePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrAlreadyExists
	case pqForeignKeyViolation:
		return ErrReferenceNotFound
	default:
		return err
	}
}
