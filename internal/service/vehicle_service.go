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

// DefaultServiceIntervalKm sets the next oil-change mileage at registration.
const DefaultServiceIntervalKm = 5000

const dateLayout = "2006-01-02"

// VehicleService is validation-then-insert plumbing for the vehicle and tire
// registries; the maintenance rules live in LedgerService.
type VehicleService struct {
	vehicles *repository.VehicleRepository
	tires    *repository.TireRepository
	log      zerolog.Logger
}

func NewVehicleService(db *gorm.DB, log zerolog.Logger) *VehicleService {
	return &VehicleService{
		vehicles: repository.NewVehicleRepository(db),
		tires:    repository.NewTireRepository(db),
		log:      log,
	}
}

func (s *VehicleService) AddVehicle(ctx context.Context, carType string, manufactureYear int, currentMileage int64) (*model.Vehicle, error) {
	carType = strings.TrimSpace(carType)

	switch {
	case carType == "":
		return nil, fmt.Errorf("%w: car type must not be empty", ErrValidation)
	case manufactureYear <= 0:
		return nil, fmt.Errorf("%w: manufacture year must be positive", ErrValidation)
	case currentMileage < 0:
		return nil, fmt.Errorf("%w: current mileage must not be negative", ErrValidation)
	}

	vehicle := &model.Vehicle{
		CarType:              carType,
		ManufactureYear:      manufactureYear,
		CurrentMileage:       currentMileage,
		LastOilChangeDate:    time.Now().Format(dateLayout),
		NextOilChangeMileage: currentMileage + DefaultServiceIntervalKm,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("%w: store vehicle: %v", ErrPersistence, err)
	}

	s.log.Info().Uint("vehicle_id", vehicle.ID).Str("car_type", vehicle.CarType).Msg("vehicle registered")
	return vehicle, nil
}

// GetLatestVehicle returns the most recently registered vehicle
// (single-active-vehicle assumption).
func (s *VehicleService) GetLatestVehicle(ctx context.Context) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load vehicle: %v", ErrPersistence, err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("%w: no vehicle registered", ErrNotFound)
	}
	return vehicle, nil
}

func (s *VehicleService) AddTire(ctx context.Context, tireType, installDate string, expectedLife int64) (*model.Tire, error) {
	tireType = strings.TrimSpace(tireType)
	installDate = strings.TrimSpace(installDate)

	switch {
	case tireType == "":
		return nil, fmt.Errorf("%w: tire type must not be empty", ErrValidation)
	case expectedLife <= 0:
		return nil, fmt.Errorf("%w: expected life must be positive", ErrValidation)
	}
	if installDate == "" {
		installDate = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, installDate); err != nil {
		return nil, fmt.Errorf("%w: install date must be YYYY-MM-DD", ErrValidation)
	}

	tire := &model.Tire{
		TireType:     tireType,
		InstallDate:  installDate,
		ExpectedLife: expectedLife,
	}
	if err := s.tires.Create(ctx, tire); err != nil {
		return nil, fmt.Errorf("%w: store tire: %v", ErrPersistence, err)
	}

	s.log.Info().Uint("tire_id", tire.ID).Str("tire_type", tire.TireType).Msg("tire registered")
	return tire, nil
}

func (s *VehicleService) ListTires(ctx context.Context) ([]model.Tire, error) {
	tires, err := s.tires.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list tires: %v", ErrPersistence, err)
	}
	return tires, nil
}
