package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerResponse is the loyalty customer representation.
type CustomerResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	LoyaltyPoints int64           `json:"loyalty_points"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	TotalVisits   int64           `json:"total_visits"`
	LastVisitDate *time.Time      `json:"last_visit_date,omitempty"`
}
