package pricing

import (
	"context"
	"errors"

	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// RegionService handles origin-region reference data
type RegionService struct {
	regionRepo   pricing.RegionRepository
	rateCardRepo pricing.RateCardRepository
}

// NewRegionService creates a new RegionService
func NewRegionService(regionRepo pricing.RegionRepository, rateCardRepo pricing.RateCardRepository) *RegionService {
	return &RegionService{
		regionRepo:   regionRepo,
		rateCardRepo: rateCardRepo,
	}
}

// Create creates a new region
func (s *RegionService) Create(ctx context.Context, req CreateRegionRequest) (*RegionResponse, error) {
	existing, err := s.regionRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Region with this code already exists")
	}

	region, err := pricing.NewRegion(req.Code, req.Name, req.FlagGlyph, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.regionRepo.Save(ctx, region); err != nil {
		return nil, err
	}

	response := ToRegionResponse(region)
	return &response, nil
}

// Update updates a region's display fields
func (s *RegionService) Update(ctx context.Context, regionID uuid.UUID, req UpdateRegionRequest) (*RegionResponse, error) {
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	name := region.Name
	if req.Name != nil {
		name = *req.Name
	}
	flagGlyph := region.FlagGlyph
	if req.FlagGlyph != nil {
		flagGlyph = *req.FlagGlyph
	}

	if err := region.Update(name, flagGlyph, region.Currency); err != nil {
		return nil, err
	}

	if err := s.regionRepo.Save(ctx, region); err != nil {
		return nil, err
	}

	response := ToRegionResponse(region)
	return &response, nil
}

// GetByID retrieves a region by ID
func (s *RegionService) GetByID(ctx context.Context, regionID uuid.UUID) (*RegionResponse, error) {
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		return nil, err
	}

	response := ToRegionResponse(region)
	return &response, nil
}

// List retrieves regions with filtering and pagination
func (s *RegionService) List(ctx context.Context, filter pricing.RegionFilter) ([]RegionResponse, int64, error) {
	regions, total, err := s.regionRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RegionResponse, len(regions))
	for i := range regions {
		responses[i] = ToRegionResponse(&regions[i])
	}
	return responses, total, nil
}

// Deactivate retires a region and its active rate card
func (s *RegionService) Deactivate(ctx context.Context, regionID uuid.UUID) error {
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		return err
	}

	region.Deactivate()

	if err := s.rateCardRepo.DeactivateForRegion(ctx, regionID); err != nil {
		return err
	}
	return s.regionRepo.Save(ctx, region)
}

// Activate re-enables a region
func (s *RegionService) Activate(ctx context.Context, regionID uuid.UUID) error {
	region, err := s.regionRepo.FindByID(ctx, regionID)
	if err != nil {
		return err
	}

	region.Activate()
	return s.regionRepo.Save(ctx, region)
}
