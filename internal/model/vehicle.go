package model

type Vehicle struct {
	ID                   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CarType              string `gorm:"not null" json:"car_type"`
	ManufactureYear      int    `gorm:"not null" json:"manufacture_year"`
	CurrentMileage       int64  `gorm:"not null" json:"current_mileage"`
	LastOilChangeDate    string `gorm:"not null" json:"last_oil_change_date"`
	NextOilChangeMileage int64  `gorm:"not null" json:"next_oil_change_mileage"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
