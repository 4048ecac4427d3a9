package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConstraint is returned when the store rejects a write because of a
	// unique or foreign key constraint
	ErrConstraint = errors.New("constraint violation")
)

// DecodeError reports a row whose shape does not match the typed entity
type DecodeError struct {
	Relation string
	ID       string
	Field    string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s: field %s: %s", e.Relation, e.ID, e.Field, e.Reason)
}

// translate maps gorm errors onto the repository error taxonomy, keeping the
// driver message for display.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %s", ErrConstraint, err.Error())
	default:
		return err
	}
}
