package request

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidUnitPrice = errors.New("invalid unit price")

type ProductRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice string `json:"unit_price" binding:"required"`
}

func (r ProductRequest) ResolveUnitPrice() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(r.UnitPrice)
	if err != nil {
		return decimal.Zero, ErrInvalidUnitPrice
	}
	return price, nil
}
