package mysql

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS client_sessions")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := New(context.Background(), db)
	require.NoError(t, err)
	return s, mock
}

func TestGetFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_sessions WHERE slot = ?")).
		WithArgs("ubu_auth_token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc123"))

	v, ok, err := s.Get(context.Background(), "ubu_auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM client_sessions")).
		WithArgs("ubu_auth_user").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := s.Get(context.Background(), "ubu_auth_user")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUpserts(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_sessions (slot, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE")).
		WithArgs("ubu_auth_token", "abc123").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Set(context.Background(), "ubu_auth_token", "abc123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUsesSingleStatement(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_sessions WHERE slot IN (?, ?)")).
		WithArgs("ubu_auth_token", "ubu_auth_user").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.Delete(context.Background(), "ubu_auth_token", "ubu_auth_user"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPropagatesDriverError(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT value").WillReturnError(boom)

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
}

func TestMigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("denied"))

	_, err = New(context.Background(), db)
	assert.ErrorContains(t, err, "apply migrations")
}
