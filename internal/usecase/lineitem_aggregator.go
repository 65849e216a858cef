package usecase

import (
	"context"
	"errors"
	"sort"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrProductsNotFound = errors.New("none of the referenced products exist")

// LineItemAggregator resolves product references into line items and computes
// invoice totals. It is shared by the creation and update paths.
type LineItemAggregator struct {
	products interfaces.IProductRepository
	log      zerolog.Logger
}

func NewLineItemAggregator(products interfaces.IProductRepository, log zerolog.Logger) *LineItemAggregator {
	return &LineItemAggregator{products: products, log: log}
}

// ReplaceLineItems swaps the invoice's line items for ones built from the
// given product-id→quantity map and returns the new grand total.
//
// An empty or nil map clears existing line items and returns zero: an update
// that supplies no products erases prior lines rather than leaving them
// stale. Ids that do not resolve are skipped with a warning; only a map where
// nothing resolves is an error. Unit prices are snapshotted at resolution
// time and subtotals are always recomputed, never taken from input.
func (a *LineItemAggregator) ReplaceLineItems(ctx context.Context, inv *entities.Invoice, quantities map[int64]decimal.Decimal) (decimal.Decimal, error) {
	if len(quantities) == 0 {
		inv.LineItems = nil
		return decimal.Zero, nil
	}

	ids := make([]int64, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	products, err := a.products.GetByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	if len(products) == 0 {
		return decimal.Zero, ErrProductsNotFound
	}

	byID := make(map[int64]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entities.LineItem, 0, len(products))
	total := decimal.Zero
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			a.log.Warn().Int64("product_id", id).Msg("requested product does not exist, line skipped")
			continue
		}
		qty := quantities[id]
		subtotal := qty.Mul(p.UnitPrice)
		items = append(items, entities.LineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    qty,
			UnitPrice:   p.UnitPrice,
			Subtotal:    subtotal,
		})
		total = total.Add(subtotal)
	}

	inv.LineItems = items
	return total, nil
}
