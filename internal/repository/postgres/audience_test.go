package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestMatchClause(t *testing.T) {
	t.Run("empty filter matches whole tenant", func(t *testing.T) {
		where, args := matchClause("org-1", domain.PreferenceFilter{})
		assert.Equal(t, `WHERE c.organization_id = $1`, where)
		assert.Equal(t, []any{"org-1"}, args)
	})

	t.Run("single dimension", func(t *testing.T) {
		where, args := matchClause("org-1", domain.PreferenceFilter{LocationID: int64Ptr(4)})
		assert.Equal(t, `WHERE c.organization_id = $1 AND (p.location_id = $2)`, where)
		assert.Equal(t, []any{"org-1", int64(4)}, args)
	})

	t.Run("dimensions are ORed", func(t *testing.T) {
		where, args := matchClause("org-1", domain.PreferenceFilter{
			BhkTypeID:  int64Ptr(2),
			LocationID: int64Ptr(4),
		})
		assert.Equal(t, `WHERE c.organization_id = $1 AND (p.bhk_type_id = $2 OR p.location_id = $3)`, where)
		assert.Equal(t, []any{"org-1", int64(2), int64(4)}, args)
	})

	t.Run("all dimensions", func(t *testing.T) {
		where, args := matchClause("org-1", domain.PreferenceFilter{
			BhkTypeID:         int64Ptr(1),
			FurnishingTypeID:  int64Ptr(2),
			LocationID:        int64Ptr(3),
			PropertyTypeID:    int64Ptr(4),
			PowerBackupTypeID: int64Ptr(5),
		})
		assert.Equal(t,
			`WHERE c.organization_id = $1 AND (p.bhk_type_id = $2 OR p.furnishing_type_id = $3 OR p.location_id = $4 OR p.property_type_id = $5 OR p.power_backup_type_id = $6)`,
			where)
		assert.Len(t, args, 6)
	})
}

func TestMatchingContacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	rows := sqlmock.NewRows([]string{"id", "organization_id", "first_name", "last_name", "email", "phone"}).
		AddRow("ct-1", "org-1", "Ravi", "Kumar", "ravi@example.com", "9876543210").
		AddRow("ct-2", "org-1", "Asha", "", "asha@example.com", "")

	mock.ExpectQuery(`AND \(p\.location_id = \$2\)`).
		WithArgs("org-1", int64(4)).
		WillReturnRows(rows)

	out, err := repo.MatchingContacts(context.Background(), "org-1", domain.PreferenceFilter{LocationID: int64Ptr(4)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ravi@example.com", out[0].Email)
	assert.Equal(t, "Asha", out[1].FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountMatchingEmptyFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAudienceRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.CountMatching(context.Background(), "org-1", domain.PreferenceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
