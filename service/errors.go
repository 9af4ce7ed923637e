package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNoRate      = errors.New("barista has no rate at this cafe")
	ErrBaristaBusy = errors.New("barista already on shift elsewhere that day")
	ErrCafeStaffed = errors.New("cafe already has a barista on shift that day")
	ErrNoShift     = errors.New("no barista on shift that day")
	ErrDuplicate   = errors.New("record already exists")
	ErrInvalid     = errors.New("invalid input")
	ErrNotFound    = errors.New("record not found")
)

// ValidationError is a user-correctable rejection of a write. Err is one of
// the sentinel errors above, Message the reason shown to the caller.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(sentinel error, format string, args ...interface{}) error {
	return &ValidationError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}

// storageErr maps gorm errors onto the service taxonomy.
func storageErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ValidationError{Err: ErrDuplicate, Message: op + ": record already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ValidationError{Err: ErrInvalid, Message: op + ": referenced record does not exist"}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// passThrough keeps service errors intact when they bubble out of a transaction.
func passThrough(op string, err error) error {
	var vErr *ValidationError
	if err == nil || errors.As(err, &vErr) || errors.Is(err, ErrNotFound) {
		return err
	}
	return storageErr(op, err)
}
