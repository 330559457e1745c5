package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pricingapp "github.com/cargoflow/backend/internal/application/pricing"
	"github.com/cargoflow/backend/internal/domain/pricing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRegionRepository implements pricing.RegionRepository for testing
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Region), args.Error(1)
}

func (m *MockRegionRepository) FindByCode(ctx context.Context, code string) (*pricing.Region, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Region), args.Error(1)
}

func (m *MockRegionRepository) FindAll(ctx context.Context, filter pricing.RegionFilter) ([]pricing.Region, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]pricing.Region), args.Get(1).(int64), args.Error(2)
}

func (m *MockRegionRepository) Save(ctx context.Context, region *pricing.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ pricing.RegionRepository = (*MockRegionRepository)(nil)

// MockRateCardRepository implements pricing.RateCardRepository for testing
type MockRateCardRepository struct {
	mock.Mock
}

func (m *MockRateCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.RateCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.RateCard), args.Error(1)
}

func (m *MockRateCardRepository) FindActiveByRegion(ctx context.Context, regionID uuid.UUID) (*pricing.RateCard, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.RateCard), args.Error(1)
}

func (m *MockRateCardRepository) FindAllByRegion(ctx context.Context, regionID uuid.UUID) ([]pricing.RateCard, error) {
	args := m.Called(ctx, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.RateCard), args.Error(1)
}

func (m *MockRateCardRepository) Save(ctx context.Context, card *pricing.RateCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockRateCardRepository) DeactivateForRegion(ctx context.Context, regionID uuid.UUID) error {
	args := m.Called(ctx, regionID)
	return args.Error(0)
}

var _ pricing.RateCardRepository = (*MockRateCardRepository)(nil)

// Test helpers

func setupRegionTestRouter() (*gin.Engine, *MockRegionRepository, *MockRateCardRepository, *RegionHandler) {
	gin.SetMode(gin.TestMode)

	mockRegionRepo := new(MockRegionRepository)
	mockRateCardRepo := new(MockRateCardRepository)
	service := pricingapp.NewRegionService(mockRegionRepo, mockRateCardRepo)
	handler := NewRegionHandler(service)

	router := gin.New()
	return router, mockRegionRepo, mockRateCardRepo, handler
}

func newTestRegion(code string) *pricing.Region {
	region, err := pricing.NewRegion(code, "Test Region", "", valueobject.Currency("CNY"))
	if err != nil {
		panic(err)
	}
	return region
}

func newTestRateCard(regionID uuid.UUID) *pricing.RateCard {
	card, err := pricing.NewRateCard(regionID,
		decimal.NewFromInt(12), decimal.NewFromInt(9), decimal.NewFromInt(5),
		valueobject.Currency("USD"))
	if err != nil {
		panic(err)
	}
	return card
}

// Tests

func TestRegionHandler_Create(t *testing.T) {
	t.Run("should create region successfully", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.POST("/regions", handler.Create)

		mockRegionRepo.On("FindByCode", mock.Anything, "cn").
			Return(nil, shared.ErrNotFound)
		mockRegionRepo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.Region")).
			Return(nil)

		reqBody := pricingapp.CreateRegionRequest{
			Code:     "cn",
			Name:     "China",
			Currency: "CNY",
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/regions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response["success"].(bool))

		mockRegionRepo.AssertExpectations(t)
	})

	t.Run("should reject duplicate region code", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.POST("/regions", handler.Create)

		existing := newTestRegion("cn")
		mockRegionRepo.On("FindByCode", mock.Anything, "cn").
			Return(existing, nil)

		reqBody := pricingapp.CreateRegionRequest{
			Code:     "cn",
			Name:     "China",
			Currency: "CNY",
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/regions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusCreated, w.Code)

		mockRegionRepo.AssertExpectations(t)
	})

	t.Run("should return error for missing required fields", func(t *testing.T) {
		router, _, _, handler := setupRegionTestRouter()
		router.POST("/regions", handler.Create)

		reqBody := map[string]interface{}{
			"code": "cn",
			// Missing name and currency
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/regions", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegionHandler_Get(t *testing.T) {
	t.Run("should get region by ID", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.GET("/regions/:id", handler.Get)

		region := newTestRegion("cn")
		mockRegionRepo.On("FindByID", mock.Anything, region.ID).
			Return(region, nil)

		req, _ := http.NewRequest(http.MethodGet, "/regions/"+region.ID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		mockRegionRepo.AssertExpectations(t)
	})

	t.Run("should return 404 for unknown region", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.GET("/regions/:id", handler.Get)

		regionID := uuid.New()
		mockRegionRepo.On("FindByID", mock.Anything, regionID).
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/regions/"+regionID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		mockRegionRepo.AssertExpectations(t)
	})

	t.Run("should return error for invalid region ID", func(t *testing.T) {
		router, _, _, handler := setupRegionTestRouter()
		router.GET("/regions/:id", handler.Get)

		req, _ := http.NewRequest(http.MethodGet, "/regions/invalid-uuid", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegionHandler_List(t *testing.T) {
	t.Run("should list regions with pagination meta", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.GET("/regions", handler.List)

		regions := []pricing.Region{*newTestRegion("cn"), *newTestRegion("ae")}
		mockRegionRepo.On("FindAll", mock.Anything, mock.AnythingOfType("pricing.RegionFilter")).
			Return(regions, int64(2), nil)

		req, _ := http.NewRequest(http.MethodGet, "/regions?page=1&page_size=20", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response["success"].(bool))
		assert.NotNil(t, response["meta"])

		mockRegionRepo.AssertExpectations(t)
	})

	t.Run("should pass the active filter through", func(t *testing.T) {
		router, mockRegionRepo, _, handler := setupRegionTestRouter()
		router.GET("/regions", handler.List)

		mockRegionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f pricing.RegionFilter) bool {
			return f.Active != nil && *f.Active
		})).Return([]pricing.Region{}, int64(0), nil)

		req, _ := http.NewRequest(http.MethodGet, "/regions?active=true", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		mockRegionRepo.AssertExpectations(t)
	})
}

func TestRegionHandler_Deactivate(t *testing.T) {
	t.Run("should deactivate region and retire its rate card", func(t *testing.T) {
		router, mockRegionRepo, mockRateCardRepo, handler := setupRegionTestRouter()
		router.POST("/regions/:id/deactivate", handler.Deactivate)

		region := newTestRegion("cn")
		mockRegionRepo.On("FindByID", mock.Anything, region.ID).
			Return(region, nil)
		mockRateCardRepo.On("DeactivateForRegion", mock.Anything, region.ID).
			Return(nil)
		mockRegionRepo.On("Save", mock.Anything, mock.AnythingOfType("*pricing.Region")).
			Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/regions/"+region.ID.String()+"/deactivate", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, region.Active)

		mockRegionRepo.AssertExpectations(t)
		mockRateCardRepo.AssertExpectations(t)
	})
}
