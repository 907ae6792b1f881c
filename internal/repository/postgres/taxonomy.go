package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
)

// taxonomy table names, shared by ResolveFilter and NamesFor.
const (
	tableBhkTypes         = "bhk_types"
	tableFurnishingTypes  = "furnishing_types"
	tableLocations        = "locations"
	tablePropertyTypes    = "property_types"
	tablePowerBackupTypes = "power_backup_types"
)

// TaxonomyRepo implements contact.TaxonomyRepository against PostgreSQL.
// The lookup tables are small and read-mostly; no caching is needed at
// current scale.
type TaxonomyRepo struct{ db *sql.DB }

// NewTaxonomyRepo creates a Postgres-backed taxonomy repository.
func NewTaxonomyRepo(db *sql.DB) *TaxonomyRepo { return &TaxonomyRepo{db: db} }

func (r *TaxonomyRepo) All(ctx context.Context) (*domain.Taxonomy, error) {
	t := &domain.Taxonomy{}
	for _, part := range []struct {
		table string
		dst   *[]domain.TaxonomyEntry
	}{
		{tableBhkTypes, &t.BhkTypes},
		{tableFurnishingTypes, &t.FurnishingTypes},
		{tableLocations, &t.Locations},
		{tablePropertyTypes, &t.PropertyTypes},
		{tablePowerBackupTypes, &t.PowerBackupTypes},
	} {
		entries, err := r.entries(ctx, part.table)
		if err != nil {
			return nil, err
		}
		*part.dst = entries
	}
	return t, nil
}

func (r *TaxonomyRepo) entries(ctx context.Context, table string) ([]domain.TaxonomyEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.TaxonomyEntry
	for rows.Next() {
		var e domain.TaxonomyEntry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *TaxonomyRepo) ResolveFilter(ctx context.Context, names domain.PreferenceNames) (domain.PreferenceFilter, error) {
	var f domain.PreferenceFilter
	for _, part := range []struct {
		table string
		name  string
		dst   **int64
	}{
		{tableBhkTypes, names.BhkType, &f.BhkTypeID},
		{tableFurnishingTypes, names.FurnishingType, &f.FurnishingTypeID},
		{tableLocations, names.Location, &f.LocationID},
		{tablePropertyTypes, names.PropertyType, &f.PropertyTypeID},
		{tablePowerBackupTypes, names.PowerBackupType, &f.PowerBackupTypeID},
	} {
		if part.name == "" {
			continue
		}
		id, err := r.idByName(ctx, part.table, part.name)
		if err != nil {
			return domain.PreferenceFilter{}, err
		}
		*part.dst = &id
	}
	return f, nil
}

func (r *TaxonomyRepo) idByName(ctx context.Context, table, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM `+table+` WHERE lower(name) = lower($1)
	`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %q in %s", contact.ErrUnknownValue, name, table)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", table, err)
	}
	return id, nil
}

func (r *TaxonomyRepo) NamesFor(ctx context.Context, f domain.PreferenceFilter) (domain.PreferenceNames, error) {
	var names domain.PreferenceNames
	for _, part := range []struct {
		table string
		id    *int64
		dst   *string
	}{
		{tableBhkTypes, f.BhkTypeID, &names.BhkType},
		{tableFurnishingTypes, f.FurnishingTypeID, &names.FurnishingType},
		{tableLocations, f.LocationID, &names.Location},
		{tablePropertyTypes, f.PropertyTypeID, &names.PropertyType},
		{tablePowerBackupTypes, f.PowerBackupTypeID, &names.PowerBackupType},
	} {
		if part.id == nil {
			continue
		}
		var name string
		err := r.db.QueryRowContext(ctx, `SELECT name FROM `+part.table+` WHERE id = $1`, *part.id).Scan(&name)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return domain.PreferenceNames{}, fmt.Errorf("name for %s: %w", part.table, err)
		}
		*part.dst = name
	}
	return names, nil
}
