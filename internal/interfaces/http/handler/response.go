package handler

import "github.com/cargoflow/backend/internal/interfaces/http/dto"

// APIResponse represents a generic APIresponse
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error APIresponse
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse represents a simple success APIresponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CountData represents count data in response
type CountData struct {
	Count int64 `json:"count"`
}

// SchedulerStatusData represents scheduler status data
type SchedulerStatusData struct {
	Enabled        bool     `json:"enabled"`
	AvailableTypes []string `json:"available_types"`
}
