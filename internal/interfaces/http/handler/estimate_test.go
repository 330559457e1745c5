package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapp "github.com/cargoflow/backend/internal/application/billing"
	"github.com/cargoflow/backend/internal/domain/billing"
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEstimateRepository implements billing.EstimateRepository for testing
type MockEstimateRepository struct {
	mock.Mock
}

func (m *MockEstimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Estimate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) FindByNumber(ctx context.Context, estimateNumber string) (*billing.Estimate, error) {
	args := m.Called(ctx, estimateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Estimate), args.Error(1)
}

func (m *MockEstimateRepository) FindAll(ctx context.Context, filter billing.EstimateFilter) ([]billing.Estimate, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Estimate), args.Get(1).(int64), args.Error(2)
}

func (m *MockEstimateRepository) Save(ctx context.Context, estimate *billing.Estimate) error {
	args := m.Called(ctx, estimate)
	return args.Error(0)
}

func (m *MockEstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEstimateRepository) GenerateEstimateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ billing.EstimateRepository = (*MockEstimateRepository)(nil)

// MockInvoiceRepository implements billing.InvoiceRepository for testing
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByEstimateID(ctx context.Context, estimateID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, estimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]billing.Invoice, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindPaidUnsettledByAgent(ctx context.Context, agentID uuid.UUID, direction billing.InvoiceDirection, periodStart, periodEnd time.Time) ([]billing.Invoice, error) {
	args := m.Called(ctx, agentID, direction, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var _ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)

// stubRateConverter converts any foreign amount at a fixed rate
type stubRateConverter struct {
	rate decimal.Decimal
}

func (s stubRateConverter) ToHome(_ context.Context, m valueobject.Money) (valueobject.Money, error) {
	return valueobject.NewMoney(m.Amount().Mul(s.rate), valueobject.HomeCurrency)
}

// Test helpers

type estimateTestEnv struct {
	router       *gin.Engine
	estimateRepo *MockEstimateRepository
	invoiceRepo  *MockInvoiceRepository
	regionRepo   *MockRegionRepository
	rateCardRepo *MockRateCardRepository
	handler      *EstimateHandler
}

func setupEstimateTestRouter() estimateTestEnv {
	gin.SetMode(gin.TestMode)

	estimateRepo := new(MockEstimateRepository)
	invoiceRepo := new(MockInvoiceRepository)
	regionRepo := new(MockRegionRepository)
	rateCardRepo := new(MockRateCardRepository)

	policy := billingapp.DefaultPolicy()
	converter := stubRateConverter{rate: decimal.NewFromInt(2500)}

	estimateService := billingapp.NewEstimateService(estimateRepo, regionRepo, rateCardRepo, policy, nil)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, estimateRepo, converter, shared.NopTransactionManager{}, policy, nil)

	return estimateTestEnv{
		router:       gin.New(),
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
		regionRepo:   regionRepo,
		rateCardRepo: rateCardRepo,
		handler:      NewEstimateHandler(estimateService, invoiceService),
	}
}

func newTestEstimate(weightKg int64) *billing.Estimate {
	estimate, err := billing.NewEstimate("EST-2026-00001", billing.EstimateInput{
		CustomerID:  uuid.New(),
		RegionID:    uuid.New(),
		Type:        billing.EstimateTypeShipping,
		WeightKg:    decimal.NewFromInt(weightKg),
		RatePerKg:   decimal.NewFromInt(12),
		HandlingFee: decimal.NewFromInt(5),
		Currency:    valueobject.Currency("USD"),
		ValidDays:   30,
	})
	if err != nil {
		panic(err)
	}
	return estimate
}

// Tests

func TestEstimateHandler_Create(t *testing.T) {
	t.Run("should price estimate from the region rate card", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates", env.handler.Create)

		region := newTestRegion("cn")
		card := newTestRateCard(region.ID)

		env.regionRepo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		env.rateCardRepo.On("FindActiveByRegion", mock.Anything, region.ID).Return(card, nil)
		env.estimateRepo.On("GenerateEstimateNumber", mock.Anything).Return("EST-2026-00001", nil)
		env.estimateRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Estimate")).Return(nil)

		reqBody := billingapp.CreateEstimateRequest{
			CustomerID: uuid.New(),
			RegionID:   region.ID,
			Type:       "SHIPPING",
			WeightKg:   decimal.NewFromInt(10),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/estimates", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response["success"].(bool))

		// 10 kg * 12/kg + 5 handling = 125
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "125", data["total"])
		assert.Equal(t, "12", data["rate_per_kg"])

		env.estimateRepo.AssertExpectations(t)
	})

	t.Run("should fail when region has no active rate card", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates", env.handler.Create)

		region := newTestRegion("cn")

		env.regionRepo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		env.rateCardRepo.On("FindActiveByRegion", mock.Anything, region.ID).
			Return(nil, shared.ErrNotFound)

		reqBody := billingapp.CreateEstimateRequest{
			CustomerID: uuid.New(),
			RegionID:   region.ID,
			Type:       "SHIPPING",
			WeightKg:   decimal.NewFromInt(10),
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/estimates", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusCreated, w.Code)

		env.rateCardRepo.AssertExpectations(t)
	})

	t.Run("should return error for missing required fields", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates", env.handler.Create)

		reqBody := map[string]interface{}{
			"type": "SHIPPING",
			// Missing customer_id, region_id, weight_kg
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/estimates", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEstimateHandler_Get(t *testing.T) {
	t.Run("should get estimate by ID", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.GET("/estimates/:id", env.handler.Get)

		estimate := newTestEstimate(10)
		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)

		req, _ := http.NewRequest(http.MethodGet, "/estimates/"+estimate.ID.String(), nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		env.estimateRepo.AssertExpectations(t)
	})

	t.Run("should return 404 for unknown estimate", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.GET("/estimates/:id", env.handler.Get)

		estimateID := uuid.New()
		env.estimateRepo.On("FindByID", mock.Anything, estimateID).
			Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/estimates/"+estimateID.String(), nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEstimateHandler_List(t *testing.T) {
	t.Run("should list estimates with status filter", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.GET("/estimates", env.handler.List)

		estimates := []billing.Estimate{*newTestEstimate(10)}
		env.estimateRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f billing.EstimateFilter) bool {
			return f.Status != nil && *f.Status == billing.EstimateStatusPending
		})).Return(estimates, int64(1), nil)

		req, _ := http.NewRequest(http.MethodGet, "/estimates?status=PENDING", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		env.estimateRepo.AssertExpectations(t)
	})

	t.Run("should reject an unknown status value", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.GET("/estimates", env.handler.List)

		req, _ := http.NewRequest(http.MethodGet, "/estimates?status=BOGUS", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEstimateHandler_ConvertToInvoice(t *testing.T) {
	t.Run("should convert pending estimate into an invoice", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates/:id/convert", env.handler.ConvertToInvoice)

		estimate := newTestEstimate(10)

		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)
		env.invoiceRepo.On("GenerateInvoiceNumber", mock.Anything).Return("INV-2026-00001", nil)
		env.invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		env.estimateRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Estimate")).Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/estimates/"+estimate.ID.String()+"/convert", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, billing.EstimateStatusConverted, estimate.Status)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		data := response["data"].(map[string]interface{})
		// USD 125 at 2500 TZS/USD
		assert.Equal(t, "312500", data["amount_tzs"])

		env.estimateRepo.AssertExpectations(t)
		env.invoiceRepo.AssertExpectations(t)
	})

	t.Run("should refuse to convert twice", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates/:id/convert", env.handler.ConvertToInvoice)

		estimate := newTestEstimate(10)
		require.NoError(t, estimate.MarkConverted(uuid.New()))

		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)

		req, _ := http.NewRequest(http.MethodPost, "/estimates/"+estimate.ID.String()+"/convert", nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusCreated, w.Code)

		env.estimateRepo.AssertExpectations(t)
	})
}

func TestEstimateHandler_Reject(t *testing.T) {
	t.Run("should reject pending estimate with a reason", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates/:id/reject", env.handler.Reject)

		estimate := newTestEstimate(10)
		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)
		env.estimateRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Estimate")).Return(nil)

		reqBody := RejectEstimateRequest{Reason: "Too expensive"}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/estimates/"+estimate.ID.String()+"/reject", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, billing.EstimateStatusRejected, estimate.Status)

		env.estimateRepo.AssertExpectations(t)
	})

	t.Run("should fail reject without a reason", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.POST("/estimates/:id/reject", env.handler.Reject)

		estimateID := uuid.New()
		body, _ := json.Marshal(map[string]interface{}{})

		req, _ := http.NewRequest(http.MethodPost, "/estimates/"+estimateID.String()+"/reject", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEstimateHandler_Delete(t *testing.T) {
	t.Run("should delete pending estimate", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.DELETE("/estimates/:id", env.handler.Delete)

		estimate := newTestEstimate(10)
		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)
		env.estimateRepo.On("Delete", mock.Anything, estimate.ID).Return(nil)

		req, _ := http.NewRequest(http.MethodDelete, "/estimates/"+estimate.ID.String(), nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)

		env.estimateRepo.AssertExpectations(t)
	})

	t.Run("should refuse to delete converted estimate", func(t *testing.T) {
		env := setupEstimateTestRouter()
		env.router.DELETE("/estimates/:id", env.handler.Delete)

		estimate := newTestEstimate(10)
		require.NoError(t, estimate.MarkConverted(uuid.New()))

		env.estimateRepo.On("FindByID", mock.Anything, estimate.ID).Return(estimate, nil)

		req, _ := http.NewRequest(http.MethodDelete, "/estimates/"+estimate.ID.String(), nil)

		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.NotEqual(t, http.StatusNoContent, w.Code)

		env.estimateRepo.AssertExpectations(t)
	})
}
