package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"oiltrack-service/internal/model"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS oil_types (
		name TEXT PRIMARY KEY,
		max_distance INTEGER NOT NULL,
		remaining_distance INTEGER NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		liter_capacity REAL NOT NULL,
		grade TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS oil_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		oil_type TEXT NOT NULL,
		change_date DATETIME NOT NULL,
		kilometer_reading INTEGER NOT NULL,
		vehicle_type TEXT NOT NULL DEFAULT 'private car'
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		car_type TEXT NOT NULL,
		manufacture_year INTEGER NOT NULL,
		current_mileage INTEGER NOT NULL,
		last_oil_change_date TEXT NOT NULL,
		next_oil_change_mileage INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS wheels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		wheel_type TEXT NOT NULL,
		install_date TEXT NOT NULL,
		expected_life INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_oil_changes_oil_type ON oil_changes (oil_type);`,
	`CREATE INDEX IF NOT EXISTS idx_oil_changes_change_date ON oil_changes (change_date);`,
}

// Migrate creates the schema. Statements are idempotent, so running against an
// already-initialized file is a no-op.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

func defaultOilTypes() []model.OilType {
	return []model.OilType{
		{Name: "10W-40", MaxDistance: 5000, RemainingDistance: 5000, LiterCapacity: 4, Grade: "10W-40"},
		{Name: "5W-30", MaxDistance: 6000, RemainingDistance: 6000, LiterCapacity: 5, Grade: "5W-30"},
	}
}

// SeedDefaults inserts the two built-in oil types when the table is empty.
// Inserts use upsert semantics, so re-seeding never errors and never
// duplicates rows.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.OilType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count oil types: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := defaultOilTypes()
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&seeds).Error; err != nil {
		return fmt.Errorf("seed default oil types: %w", err)
	}
	return nil
}
