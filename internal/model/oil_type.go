package model

// OilType is a named maintenance consumable profile with a rolling
// service-life counter. RemainingDistance stays within [0, MaxDistance];
// only the ledger mutates it.
type OilType struct {
	Name              string  `gorm:"primaryKey" json:"name"`
	MaxDistance       int64   `gorm:"not null" json:"max_distance"`
	RemainingDistance int64   `gorm:"not null" json:"remaining_distance"`
	Image             string  `gorm:"not null;default:''" json:"image"`
	LiterCapacity     float64 `gorm:"not null" json:"liter_capacity"`
	Grade             string  `gorm:"not null" json:"grade"`
}

func (OilType) TableName() string {
	return "oil_types"
}
