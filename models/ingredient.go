package models

// Ingredient is static reference data, bulk-loaded from the catalog file and
// read-only at request time. Distinct rows may share a (name, unit) pair.
type Ingredient struct {
	ID              uint   `json:"id" db:"id" gorm:"primaryKey"`
	Name            string `json:"name" db:"name" gorm:"type:varchar(200);not null;index"`
	MeasurementUnit string `json:"measurement_unit" db:"measurement_unit" gorm:"type:varchar(200);not null"`
}
