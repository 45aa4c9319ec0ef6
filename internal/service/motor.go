package service

import (
	"context"
	"strings"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
)

type motorService struct {
	typeRepo repository.MotorTypeRepository
	unitRepo repository.MotorUnitRepository
}

func NewMotorService(typeRepo repository.MotorTypeRepository, unitRepo repository.MotorUnitRepository) MotorService {
	return &motorService{
		typeRepo: typeRepo,
		unitRepo: unitRepo,
	}
}

func validateType(mt *domain.MotorType) error {
	mt.Name = strings.TrimSpace(mt.Name)
	if mt.Name == "" {
		return invalid("name", "is required")
	}
	if mt.DailyRate <= 0 {
		return invalid("daily_rate", "must be positive")
	}
	if mt.EngineCC < 0 {
		return invalid("engine_cc", "must not be negative")
	}
	return nil
}

func (s *motorService) CreateType(ctx context.Context, mt *domain.MotorType) error {
	if err := validateType(mt); err != nil {
		return err
	}
	if err := s.typeRepo.Create(ctx, mt); err != nil {
		return err
	}
	logger.Info("Motor type created", "motorTypeID", mt.ID, "name", mt.Name)
	return nil
}

func (s *motorService) GetType(ctx context.Context, id int32) (*domain.MotorType, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *motorService) UpdateType(ctx context.Context, mt *domain.MotorType) error {
	if err := validateType(mt); err != nil {
		return err
	}
	return s.typeRepo.Update(ctx, mt)
}

func (s *motorService) DeleteType(ctx context.Context, id int32) error {
	units, err := s.unitRepo.List(ctx, id, "")
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return invalid("id", "motor type still has %d unit(s)", len(units))
	}
	return s.typeRepo.Delete(ctx, id)
}

func (s *motorService) ListTypes(ctx context.Context) ([]domain.MotorType, error) {
	return s.typeRepo.List(ctx)
}

// prepareUnit normalizes a unit and falls back to its type's daily rate
func (s *motorService) prepareUnit(ctx context.Context, unit *domain.MotorUnit) error {
	unit.PlateNumber = strings.ToUpper(strings.Join(strings.Fields(unit.PlateNumber), " "))
	if unit.PlateNumber == "" {
		return invalid("plate_number", "is required")
	}
	if unit.DailyRate < 0 {
		return invalid("daily_rate", "must not be negative")
	}
	if unit.Status == "" {
		unit.Status = domain.MotorUnitStatusAvailable
	}
	if !unit.Status.Valid() {
		return invalid("status", "unknown status %q", unit.Status)
	}

	mt, err := s.typeRepo.GetByID(ctx, unit.MotorTypeID)
	if err != nil {
		return err
	}
	if unit.DailyRate == 0 {
		unit.DailyRate = mt.DailyRate
	}
	return nil
}

func (s *motorService) CreateUnit(ctx context.Context, unit *domain.MotorUnit) error {
	if err := s.prepareUnit(ctx, unit); err != nil {
		return err
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return err
	}
	logger.Info("Motor unit created", "unitID", unit.ID, "plate", unit.PlateNumber)
	return nil
}

func (s *motorService) GetUnit(ctx context.Context, id int32) (*domain.MotorUnit, error) {
	return s.unitRepo.GetByID(ctx, id)
}

func (s *motorService) UpdateUnit(ctx context.Context, unit *domain.MotorUnit) error {
	current, err := s.unitRepo.GetByID(ctx, unit.ID)
	if err != nil {
		return err
	}
	// rental status is owned by transactions
	if unit.Status == "" || current.Status == domain.MotorUnitStatusRented {
		unit.Status = current.Status
	}
	if err := s.prepareUnit(ctx, unit); err != nil {
		return err
	}
	return s.unitRepo.Update(ctx, unit)
}

func (s *motorService) DeleteUnit(ctx context.Context, id int32) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit.Status == domain.MotorUnitStatusRented {
		return ErrUnitRented
	}
	return s.unitRepo.Delete(ctx, id)
}

func (s *motorService) ListUnits(ctx context.Context, motorTypeID int32, status string) ([]domain.MotorUnit, error) {
	if status != "" && !domain.MotorUnitStatus(status).Valid() {
		return nil, invalid("status", "unknown status %q", status)
	}
	return s.unitRepo.List(ctx, motorTypeID, status)
}

// SetUnitStatus moves a unit between AVAILABLE and MAINTENANCE. RENTED is set only by transactions.
func (s *motorService) SetUnitStatus(ctx context.Context, id int32, status domain.MotorUnitStatus) (*domain.MotorUnit, error) {
	if status != domain.MotorUnitStatusAvailable && status != domain.MotorUnitStatusMaintenance {
		return nil, invalid("status", "must be AVAILABLE or MAINTENANCE")
	}

	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit.Status == domain.MotorUnitStatusRented {
		return nil, ErrUnitRented
	}

	if err := s.unitRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	unit.Status = status
	logger.Info("Motor unit status changed", "unitID", id, "status", status)
	return unit, nil
}
