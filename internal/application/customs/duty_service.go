package customs

import (
	"context"

	"github.com/cargoflow/backend/internal/domain/customs"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DutyService calculates vehicle import duties and maintains the rate
// table the calculator reads from
type DutyService struct {
	rateRepo customs.VehicleDutyRateRepository
}

// NewDutyService creates a new DutyService
func NewDutyService(rateRepo customs.VehicleDutyRateRepository) *DutyService {
	return &DutyService{rateRepo: rateRepo}
}

// Calculate produces a duty estimate from the active rate table. The
// calculation itself never fails: table rows missing for a category
// fall back to the statutory defaults.
func (s *DutyService) Calculate(ctx context.Context, req CalculateDutyRequest) (*DutyResultResponse, error) {
	rates, err := s.rateRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	result := customs.NewCalculator(rates).Calculate(req.CIFValue, customs.VehicleProfile{
		EngineCC:  req.EngineCC,
		Year:      req.Year,
		IsUtility: req.IsUtility,
	})

	response := ToDutyResultResponse(result)
	return &response, nil
}

// CreateRate adds a row to the rate table
func (s *DutyService) CreateRate(ctx context.Context, req CreateDutyRateRequest) (*DutyRateResponse, error) {
	rate, err := customs.NewVehicleDutyRate(
		customs.RateCategory(req.Category),
		req.Rate,
		req.MinEngineCC,
		req.MaxEngineCC,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToDutyRateResponse(rate)
	return &response, nil
}

// UpdateRate changes the rate value of a table row
func (s *DutyService) UpdateRate(ctx context.Context, rateID uuid.UUID, req UpdateDutyRateRequest) (*DutyRateResponse, error) {
	rate, err := s.rateRepo.FindByID(ctx, rateID)
	if err != nil {
		return nil, err
	}

	if err := rate.UpdateRate(req.Rate); err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToDutyRateResponse(rate)
	return &response, nil
}

// DeactivateRate removes a row from calculator lookups
func (s *DutyService) DeactivateRate(ctx context.Context, rateID uuid.UUID) error {
	rate, err := s.rateRepo.FindByID(ctx, rateID)
	if err != nil {
		return err
	}

	rate.Deactivate()
	return s.rateRepo.Save(ctx, rate)
}

// ListRates retrieves rate table rows with pagination
func (s *DutyService) ListRates(ctx context.Context, filter shared.Filter) ([]DutyRateResponse, int64, error) {
	rates, total, err := s.rateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DutyRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToDutyRateResponse(&rates[i])
	}
	return responses, total, nil
}
