package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenRepo(t *testing.T) (*TokenRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTokenRepo(db), mock
}

func TestValidateRefreshResolvesActiveSession(t *testing.T) {
	repo, mock := newTokenRepo(t)

	rows := sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
		AddRow(uint64(7), time.Now().UTC().Add(time.Hour), nil)
	mock.ExpectQuery(`SELECT user_id, expires_at, revoked_at`).
		WithArgs("somehash").
		WillReturnRows(rows)

	uid, err := repo.ValidateRefresh(context.Background(), "somehash")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshRejectsDeadSessions(t *testing.T) {
	future := time.Now().UTC().Add(time.Hour)
	past := time.Now().UTC().Add(-time.Hour)
	revoked := time.Now().UTC().Add(-time.Minute)

	tests := []struct {
		name string
		rows *sqlmock.Rows
	}{
		{"unknown hash", sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"})},
		{"revoked", sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(uint64(7), future, revoked)},
		{"expired", sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(uint64(7), past, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTokenRepo(t)
			mock.ExpectQuery(`SELECT user_id, expires_at, revoked_at`).
				WithArgs("somehash").
				WillReturnRows(tt.rows)

			uid, err := repo.ValidateRefresh(context.Background(), "somehash")
			assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
			assert.Zero(t, uid)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRevokeByHashIsIdempotent(t *testing.T) {
	repo, mock := newTokenRepo(t)

	// Second revocation matches zero rows; that is still success.
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("somehash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE refresh_tokens SET revoked_at`).
		WithArgs("somehash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.RevokeByHash(context.Background(), "somehash"))
	require.NoError(t, repo.RevokeByHash(context.Background(), "somehash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
