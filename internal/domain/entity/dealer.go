package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dealer is a supplier purchase orders are raised against. Soft-deleted via
// IsActive rather than removed, so historical POs keep a valid reference.
type Dealer struct {
	ID                string
	Name              string
	ContactPerson     string
	Phone             string
	Email             string
	Address           string
	City              string
	State             string
	Pincode           string
	GSTNumber         string
	SupplyCategories  []string
	IsActive          bool
	Notes             string
	LastOrderDate     *time.Time
	LastOrderAmount   decimal.Decimal
	OutstandingAmount decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
