package model

import "time"

// ChangeEvent is one recorded odometer reading. KilometerReading is the
// distance driven since the previous reading, not an absolute odometer value.
// Rows are append-only; the history is never mutated or deleted.
type ChangeEvent struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OilType          string    `gorm:"column:oil_type;not null;index" json:"oil_type"`
	ChangeDate       time.Time `gorm:"not null;index" json:"change_date"`
	KilometerReading int64     `gorm:"not null" json:"kilometer_reading"`
	VehicleType      string    `gorm:"not null" json:"vehicle_type"`
}

func (ChangeEvent) TableName() string {
	return "oil_changes"
}
