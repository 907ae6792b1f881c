package distlock

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGAdvisoryLockAcquireRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`pg_try_advisory_lock`).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec(`pg_advisory_unlock`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	lock := NewPGAdvisoryLock(db, "campaign:execute:c1")
	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	// The unlock must run on the session that locked; the lock holds the
	// connection checked out between Acquire and Release.
	require.NotNil(t, lock.conn)
	require.NoError(t, lock.Release(context.Background()))
	assert.Nil(t, lock.conn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAdvisoryLockNotAcquired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`pg_try_advisory_lock`).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	lock := NewPGAdvisoryLock(db, "campaign:execute:c1")
	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, lock.conn, "a failed acquire must not pin a connection")

	// Releasing a lock that was never acquired is a no-op: no unlock
	// statement is expected.
	require.NoError(t, lock.Release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGAdvisoryLockSameKeySameID(t *testing.T) {
	a := NewPGAdvisoryLock(nil, "campaign:execute:c1")
	b := NewPGAdvisoryLock(nil, "campaign:execute:c1")
	c := NewPGAdvisoryLock(nil, "campaign:execute:c2")

	assert.Equal(t, a.lockID, b.lockID)
	assert.NotEqual(t, a.lockID, c.lockID)
}
