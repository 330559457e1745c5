package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	pricingapp "github.com/cargoflow/backend/internal/application/pricing"
	"github.com/cargoflow/backend/internal/domain/shared/valueobject"
)

// ExchangeRateHandler handles exchange rate HTTP requests
type ExchangeRateHandler struct {
	BaseHandler
	exchangeRateService *pricingapp.ExchangeRateService
}

// NewExchangeRateHandler creates a new exchange rate handler
func NewExchangeRateHandler(exchangeRateService *pricingapp.ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{exchangeRateService: exchangeRateService}
}

// Set records a new exchange rate. Earlier rates are kept for audit;
// conversions always use the latest entry per currency.
func (h *ExchangeRateHandler) Set(c *gin.Context) {
	var req pricingapp.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	rate, err := h.exchangeRateService.Set(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rate)
}

// Latest returns the most recent rate for every known currency.
func (h *ExchangeRateHandler) Latest(c *gin.Context) {
	rates, err := h.exchangeRateService.Latest(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rates)
}

// History returns the rate history of one currency.
func (h *ExchangeRateHandler) History(c *gin.Context) {
	currency := valueobject.Currency(c.Param("currency"))
	if !currency.IsValid() {
		h.BadRequest(c, "Invalid currency code")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rates, total, err := h.exchangeRateService.History(c.Request.Context(), currency, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rates, total, filter.Page, filter.PageSize)
}

// RateTable returns the current currency-to-TZS conversion table.
func (h *ExchangeRateHandler) RateTable(c *gin.Context) {
	table, err := h.exchangeRateService.RateTable(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// ConvertRequest asks for a conversion of a foreign amount into TZS
type ConvertRequest struct {
	Amount   decimal.Decimal `form:"amount" binding:"required"`
	Currency string          `form:"currency" binding:"required,len=3"`
}

// ConvertResponse carries a converted amount
type ConvertResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	AmountTZS    decimal.Decimal `json:"amount_tzs"`
	HomeCurrency string          `json:"home_currency"`
}

// Convert converts a foreign amount into the home currency using the
// latest recorded rate.
func (h *ExchangeRateHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	money, err := valueobject.NewMoney(req.Amount, valueobject.Currency(req.Currency))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	converted, err := h.exchangeRateService.ToHome(c.Request.Context(), money)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ConvertResponse{
		Amount:       req.Amount,
		Currency:     req.Currency,
		AmountTZS:    converted.Amount(),
		HomeCurrency: converted.Currency().String(),
	})
}
