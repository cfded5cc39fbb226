package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ConstraintKind // 0 means StorageError
	}{
		{"pq unique", &pq.Error{Code: "23505"}, Unique},
		{"pq foreign key", &pq.Error{Code: "23503"}, ForeignKey},
		{"pq not null", &pq.Error{Code: "23502"}, NotNull},
		{"pq check", &pq.Error{Code: "23514"}, Check},
		{"pq invalid text", &pq.Error{Code: "22P02"}, 0},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062}, Unique},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, ForeignKey},
		{"mysql null", &mysql.MySQLError{Number: 1048}, NotNull},
		{"mysql check", &mysql.MySQLError{Number: 3819}, Check},
		{"mysql other", &mysql.MySQLError{Number: 1146}, 0},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, Unique},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, ForeignKey},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, 0},
		{"wrapped pq", fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}), Unique},
		{"plain", errors.New("connection refused"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("op", tt.err)

			if tt.kind == 0 {
				var se *StorageError
				assert.True(t, errors.As(err, &se), "expected StorageError, got %T", err)
				assert.ErrorIs(t, err, tt.err)
				return
			}
			var cv *ConstraintViolation
			if assert.True(t, errors.As(err, &cv), "expected ConstraintViolation, got %T", err) {
				assert.Equal(t, tt.kind, cv.Kind)
				assert.Equal(t, "op", cv.Op)
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classify("op", nil))
}
