package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"oiltrack-service/internal/model"
	"oiltrack-service/internal/repository"
)

// DefaultVehicleCategory is used when a reading carries no category.
const DefaultVehicleCategory = "private car"

// LedgerService owns every mutation of OilType.RemainingDistance and is the
// only writer of change events. The store is the single source of truth;
// there is no in-memory mirror to drift out of sync.
type LedgerService struct {
	db           *gorm.DB
	oilTypes     *repository.OilTypeRepository
	events       *repository.ChangeEventRepository
	historyLimit int
	log          zerolog.Logger
}

func NewLedgerService(db *gorm.DB, historyLimit int, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		db:           db,
		oilTypes:     repository.NewOilTypeRepository(db),
		events:       repository.NewChangeEventRepository(db),
		historyLimit: historyLimit,
		log:          log,
	}
}

// ReadingResult reports the post-update state of one recorded reading.
// Threshold flags are single-shot classifications of the new value, not
// edge-triggered transitions across calls.
type ReadingResult struct {
	NewRemaining             int64 `json:"new_remaining"`
	CrossedWarningThreshold  bool  `json:"crossed_warning_threshold"`
	CrossedCriticalThreshold bool  `json:"crossed_critical_threshold"`
}

// RecordReading subtracts a driven-distance delta from the named oil type's
// remaining distance, clamped at zero, and appends one change event. The
// update and the append commit together or not at all.
func (s *LedgerService) RecordReading(ctx context.Context, oilTypeName string, distanceDelta int64, vehicleCategory string) (*ReadingResult, error) {
	oilTypeName = strings.TrimSpace(oilTypeName)
	if oilTypeName == "" {
		return nil, fmt.Errorf("%w: oil type name must not be empty", ErrValidation)
	}
	if distanceDelta <= 0 {
		return nil, fmt.Errorf("%w: distance delta must be positive", ErrValidation)
	}
	if strings.TrimSpace(vehicleCategory) == "" {
		vehicleCategory = DefaultVehicleCategory
	}

	var result *ReadingResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		oilRepo := repository.NewOilTypeRepository(tx)

		oil, err := oilRepo.GetByName(ctx, oilTypeName)
		if err != nil {
			return fmt.Errorf("%w: load oil type: %v", ErrPersistence, err)
		}
		if oil == nil {
			return fmt.Errorf("%w: unknown oil type %q", ErrValidation, oilTypeName)
		}

		newRemaining := oil.RemainingDistance - distanceDelta
		if newRemaining < 0 {
			newRemaining = 0
		}

		if err := oilRepo.UpdateRemaining(ctx, oil.Name, newRemaining); err != nil {
			return fmt.Errorf("%w: update remaining distance: %v", ErrPersistence, err)
		}

		event := &model.ChangeEvent{
			OilType:          oil.Name,
			ChangeDate:       time.Now(),
			KilometerReading: distanceDelta,
			VehicleType:      vehicleCategory,
		}
		if err := repository.NewChangeEventRepository(tx).Create(ctx, event); err != nil {
			return fmt.Errorf("%w: append change event: %v", ErrPersistence, err)
		}

		status := Classify(newRemaining, oil.MaxDistance)
		result = &ReadingResult{
			NewRemaining:             newRemaining,
			CrossedWarningThreshold:  status == StatusWarning,
			CrossedCriticalThreshold: status == StatusCritical,
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("oil_type", oilTypeName).Msg("record reading failed")
		return nil, err
	}

	s.log.Info().
		Str("oil_type", oilTypeName).
		Int64("distance_delta", distanceDelta).
		Int64("new_remaining", result.NewRemaining).
		Msg("reading recorded")
	return result, nil
}

// ResetOilType restores the remaining distance to the type's maximum. A reset
// is not a reading, so no change event is appended.
func (s *LedgerService) ResetOilType(ctx context.Context, oilTypeName string) (*model.OilType, error) {
	oilTypeName = strings.TrimSpace(oilTypeName)

	oil, err := s.oilTypes.GetByName(ctx, oilTypeName)
	if err != nil {
		return nil, fmt.Errorf("%w: load oil type: %v", ErrPersistence, err)
	}
	if oil == nil {
		return nil, fmt.Errorf("%w: oil type %q", ErrNotFound, oilTypeName)
	}

	if err := s.oilTypes.UpdateRemaining(ctx, oil.Name, oil.MaxDistance); err != nil {
		return nil, fmt.Errorf("%w: reset remaining distance: %v", ErrPersistence, err)
	}
	oil.RemainingDistance = oil.MaxDistance

	s.log.Info().Str("oil_type", oil.Name).Int64("remaining", oil.RemainingDistance).Msg("oil type reset")
	return oil, nil
}

// RegisterOilType validates and stores a new oil type profile. The name acts
// as an upsert key: registering an existing name replaces the profile, and
// the remaining distance starts at the maximum either way.
func (s *LedgerService) RegisterOilType(ctx context.Context, name string, maxDistance int64, literCapacity float64, grade string) (*model.OilType, error) {
	name = strings.TrimSpace(name)
	grade = strings.TrimSpace(grade)

	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	case maxDistance <= 0:
		return nil, fmt.Errorf("%w: max distance must be positive", ErrValidation)
	case literCapacity <= 0:
		return nil, fmt.Errorf("%w: liter capacity must be positive", ErrValidation)
	case grade == "":
		return nil, fmt.Errorf("%w: grade must not be empty", ErrValidation)
	}

	oil := &model.OilType{
		Name:              name,
		MaxDistance:       maxDistance,
		RemainingDistance: maxDistance,
		LiterCapacity:     literCapacity,
		Grade:             grade,
	}
	if err := s.oilTypes.Upsert(ctx, oil); err != nil {
		return nil, fmt.Errorf("%w: store oil type: %v", ErrPersistence, err)
	}

	s.log.Info().Str("oil_type", oil.Name).Int64("max_distance", oil.MaxDistance).Msg("oil type registered")
	return oil, nil
}

// GetOilType loads one oil type for status rendering.
func (s *LedgerService) GetOilType(ctx context.Context, name string) (*model.OilType, error) {
	oil, err := s.oilTypes.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: load oil type: %v", ErrPersistence, err)
	}
	if oil == nil {
		return nil, fmt.Errorf("%w: oil type %q", ErrNotFound, name)
	}
	return oil, nil
}

func (s *LedgerService) ListOilTypes(ctx context.Context) ([]model.OilType, error) {
	oils, err := s.oilTypes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list oil types: %v", ErrPersistence, err)
	}
	return oils, nil
}

// ListHistory returns change events most-recent-first. A non-positive limit
// falls back to the configured default.
func (s *LedgerService) ListHistory(ctx context.Context, limit int) ([]model.ChangeEvent, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	events, err := s.events.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %v", ErrPersistence, err)
	}
	return events, nil
}
