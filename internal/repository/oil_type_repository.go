package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"oiltrack-service/internal/model"
)

type OilTypeRepository struct {
	db *gorm.DB
}

func NewOilTypeRepository(db *gorm.DB) *OilTypeRepository {
	return &OilTypeRepository{db: db}
}

// GetByName returns (nil, nil) when the oil type does not exist.
func (r *OilTypeRepository) GetByName(ctx context.Context, name string) (*model.OilType, error) {
	var oil model.OilType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&oil).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &oil, nil
}

// Upsert inserts the oil type or replaces an existing row with the same name.
func (r *OilTypeRepository) Upsert(ctx context.Context, oil *model.OilType) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(oil).Error
}

func (r *OilTypeRepository) UpdateRemaining(ctx context.Context, name string, remaining int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.OilType{}).
		Where("name = ?", name).
		Update("remaining_distance", remaining)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OilTypeRepository) List(ctx context.Context) ([]model.OilType, error) {
	var oils []model.OilType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&oils).Error; err != nil {
		return nil, err
	}
	return oils, nil
}
