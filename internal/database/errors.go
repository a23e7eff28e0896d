package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrInUse            = errors.New("record is referenced by other records")
	ErrMissingReference = errors.New("referenced record does not exist")
)

// TranslateWrite maps driver errors from inserts and updates to package sentinels.
// A foreign key failure on write means the referenced parent is absent.
func TranslateWrite(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	case isForeignKeyViolation(err):
		return ErrMissingReference
	}
	return err
}

// TranslateDelete maps driver errors from deletes. A foreign key failure on
// delete means dependents still reference the row.
func TranslateDelete(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isForeignKeyViolation(err):
		return ErrInUse
	}
	return err
}

// TranslateRead maps gorm.ErrRecordNotFound to ErrNotFound.
func TranslateRead(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "sqlstate 23505")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "sqlstate 23503")
}
