package gamification

import (
	"github.com/cargoflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MilestoneType identifies a cumulative achievement kind
type MilestoneType string

const (
	MilestoneInvoicesIssued   MilestoneType = "INVOICES_ISSUED"
	MilestoneEstimatesCreated MilestoneType = "ESTIMATES_CREATED"
	MilestoneShipmentsHandled MilestoneType = "SHIPMENTS_HANDLED"
	MilestoneRevenueCollected MilestoneType = "REVENUE_COLLECTED"
)

// IsValid checks if the milestone type is valid
func (t MilestoneType) IsValid() bool {
	switch t {
	case MilestoneInvoicesIssued, MilestoneEstimatesCreated,
		MilestoneShipmentsHandled, MilestoneRevenueCollected:
		return true
	}
	return false
}

// EmployeeMilestone records a threshold an employee has crossed, for
// example 100 invoices issued. Append-only, unique per
// (employee, type, threshold).
type EmployeeMilestone struct {
	shared.BaseEntity
	EmployeeID uuid.UUID     `json:"employee_id"`
	Type       MilestoneType `json:"type"`
	Threshold  int64         `json:"threshold"`
}

// NewEmployeeMilestone creates a milestone record
func NewEmployeeMilestone(employeeID uuid.UUID, milestoneType MilestoneType, threshold int64) (*EmployeeMilestone, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if !milestoneType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Milestone type is not valid")
	}
	if threshold <= 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Milestone threshold must be positive")
	}

	return &EmployeeMilestone{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		Type:       milestoneType,
		Threshold:  threshold,
	}, nil
}
