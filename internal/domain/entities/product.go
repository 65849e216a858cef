package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a purchasable item invoices may reference.
//
// Storage model (DynamoDB):
//   - PK: id (number)
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
