package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"bad connection", driver.ErrBadConn, ErrUnavailable},
		{"deadline", context.DeadlineExceeded, ErrUnavailable},
		{"postgres connection failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, ErrUnavailable},
		{"postgres too many connections", &pgconn.PgError{Code: pgerrcode.TooManyConnections}, ErrUnavailable},
		{"postgres admin shutdown", &pgconn.PgError{Code: pgerrcode.AdminShutdown}, ErrUnavailable},
		{"postgres unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, ErrFailed},
		{"anything else", errors.New("boom"), ErrFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := classify("op", tc.err)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.NoError(t, classify("op", nil))

	already := classify("inner", gorm.ErrRecordNotFound)
	assert.Same(t, already, classify("outer", already))
}
