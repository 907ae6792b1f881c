package domain

// TaxonomyEntry is one row of a preference lookup table (BHK type,
// furnishing type, location, property type, power backup type). Locations
// store a city name in Name; the other tables store a label.
type TaxonomyEntry struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Taxonomy bundles all five preference lookup tables for the read-only
// preferences endpoint.
type Taxonomy struct {
	BhkTypes         []TaxonomyEntry `json:"bhk_types"`
	FurnishingTypes  []TaxonomyEntry `json:"furnishing_types"`
	Locations        []TaxonomyEntry `json:"locations"`
	PropertyTypes    []TaxonomyEntry `json:"property_types"`
	PowerBackupTypes []TaxonomyEntry `json:"power_backup_types"`
}

// PreferenceFilter is the set of optional taxonomy references shared by
// contact preferences and audience definitions. A nil field means
// "no value" on a preference and "don't filter on this dimension" on an
// audience.
type PreferenceFilter struct {
	BhkTypeID         *int64 `json:"bhk_type_id" db:"bhk_type_id"`
	FurnishingTypeID  *int64 `json:"furnishing_type_id" db:"furnishing_type_id"`
	LocationID        *int64 `json:"location_id" db:"location_id"`
	PropertyTypeID    *int64 `json:"property_type_id" db:"property_type_id"`
	PowerBackupTypeID *int64 `json:"power_backup_type_id" db:"power_backup_type_id"`
}

// IsEmpty reports whether no dimension is set.
func (f PreferenceFilter) IsEmpty() bool {
	return f.BhkTypeID == nil && f.FurnishingTypeID == nil && f.LocationID == nil &&
		f.PropertyTypeID == nil && f.PowerBackupTypeID == nil
}

// PreferenceNames carries the human-readable labels for a PreferenceFilter,
// used for API input (resolved to IDs) and output (echoed back as names).
type PreferenceNames struct {
	BhkType         string `json:"bhk_type,omitempty"`
	FurnishingType  string `json:"furnishing_type,omitempty"`
	Location        string `json:"location,omitempty"`
	PropertyType    string `json:"property_type,omitempty"`
	PowerBackupType string `json:"power_backup_type,omitempty"`
}
