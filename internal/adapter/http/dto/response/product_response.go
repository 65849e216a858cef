package response

import (
	"time"

	"invoicetracker/internal/domain/entities"
)

type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromProduct(p entities.Product) ProductResponse {
	return ProductResponse{
		ID:        formatID(p.ID),
		Name:      p.Name,
		UnitPrice: p.UnitPrice.StringFixed(2),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromProducts(products []entities.Product, nextCursor string) ProductListResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return ProductListResponse{Products: out, NextCursor: nextCursor}
}
