package repository

import (
	"context"

	"gorm.io/gorm"

	"oiltrack-service/internal/model"
)

type TireRepository struct {
	db *gorm.DB
}

func NewTireRepository(db *gorm.DB) *TireRepository {
	return &TireRepository{db: db}
}

func (r *TireRepository) Create(ctx context.Context, tire *model.Tire) error {
	return r.db.WithContext(ctx).Create(tire).Error
}

func (r *TireRepository) List(ctx context.Context) ([]model.Tire, error) {
	var tires []model.Tire
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&tires).Error; err != nil {
		return nil, err
	}
	return tires, nil
}
