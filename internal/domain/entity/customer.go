package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the loyalty subject attached to sales. Phone and email are unique
// when present. Points are debited on redemption and credited on completed
// sales; totals accumulate at settlement.
type Customer struct {
	ID            string
	Name          string
	Phone         string
	Email         string
	LoyaltyPoints int64
	TotalSpent    decimal.Decimal
	TotalVisits   int64
	LastVisitDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
