package repository

import (
	"context"

	"gorm.io/gorm"

	"oiltrack-service/internal/model"
)

type ChangeEventRepository struct {
	db *gorm.DB
}

func NewChangeEventRepository(db *gorm.DB) *ChangeEventRepository {
	return &ChangeEventRepository{db: db}
}

func (r *ChangeEventRepository) Create(ctx context.Context, event *model.ChangeEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// List returns events most-recent-first. A non-positive limit returns the
// full history.
func (r *ChangeEventRepository) List(ctx context.Context, limit int) ([]model.ChangeEvent, error) {
	var events []model.ChangeEvent
	query := r.db.WithContext(ctx).
		Model(&model.ChangeEvent{}).
		Order("change_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *ChangeEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ChangeEvent{}).Count(&count).Error
	return count, err
}
