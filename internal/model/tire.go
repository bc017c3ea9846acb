package model

// Tire rows live in the legacy "wheels" table and keep its column names.
type Tire struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TireType     string `gorm:"column:wheel_type;not null" json:"tire_type"`
	InstallDate  string `gorm:"column:install_date;not null" json:"install_date"`
	ExpectedLife int64  `gorm:"column:expected_life;not null" json:"expected_life"`
}

func (Tire) TableName() string {
	return "wheels"
}
