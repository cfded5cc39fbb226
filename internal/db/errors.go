package db

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ConstraintKind says which store constraint rejected a write.
type ConstraintKind int

const (
	Unique ConstraintKind = iota + 1
	ForeignKey
	NotNull
	Check
)

func (k ConstraintKind) String() string {
	switch k {
	case Unique:
		return "unique"
	case ForeignKey:
		return "foreign_key"
	case NotNull:
		return "not_null"
	case Check:
		return "check"
	}
	return "unknown"
}

// ConstraintViolation is a write rejected by a uniqueness, referential,
// NOT NULL or CHECK rule of the store.
type ConstraintViolation struct {
	Op   string
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s constraint violation: %v", e.Op, e.Kind, e.Err)
}

func (e *ConstraintViolation) Unwrap() error { return e.Err }

// StorageError is any other failure talking to the store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// IsConstraint reports whether err is a ConstraintViolation of the given kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var cv *ConstraintViolation
	return errors.As(err, &cv) && cv.Kind == kind
}

// classify wraps a driver error into ConstraintViolation or StorageError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := constraintKind(err); ok {
		return &ConstraintViolation{Op: op, Kind: kind, Err: err}
	}
	return storageErr(op, err)
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func constraintKind(err error) (ConstraintKind, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return Unique, true
		case "23503":
			return ForeignKey, true
		case "23502":
			return NotNull, true
		case "23514":
			return Check, true
		}
		return 0, false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return Unique, true
		case 1451, 1452:
			return ForeignKey, true
		case 1048:
			return NotNull, true
		case 3819:
			return Check, true
		}
		return 0, false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return Unique, true
		case sqlite3.ErrConstraintForeignKey:
			return ForeignKey, true
		case sqlite3.ErrConstraintNotNull:
			return NotNull, true
		case sqlite3.ErrConstraintCheck:
			return Check, true
		}
	}
	return 0, false
}
