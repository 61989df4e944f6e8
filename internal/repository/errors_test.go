package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection refused")

	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
		wantNotFound  bool
		wantSame      bool
	}{
		{name: "nil", err: nil},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, wantDuplicate: true},
		{name: "malformed uuid", err: &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}, wantNotFound: true},
		{name: "no rows", err: pgx.ErrNoRows, wantNotFound: true, wantSame: true},
		{name: "other pg error", err: &pgconn.PgError{Code: "23503"}, wantSame: true},
		{name: "plain error", err: other, wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.wantDuplicate, IsDuplicate(got))
			assert.Equal(t, tt.wantNotFound, NotFound(got))
			if tt.wantSame {
				assert.Same(t, tt.err, got)
			}
		})
	}
}

func TestExecAffected(t *testing.T) {
	assert.ErrorIs(t, execAffected(pgconn.NewCommandTag("UPDATE 0"), nil), pgx.ErrNoRows)
	assert.NoError(t, execAffected(pgconn.NewCommandTag("DELETE 1"), nil))
	assert.True(t, IsDuplicate(execAffected(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"})))
}
