package response

import (
	"strconv"
	"time"

	"invoicetracker/internal/domain/entities"
)

// Ids are serialized as strings: they are 63-bit values and JavaScript
// consumers lose precision past 2^53.

type LineItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type InvoiceResponse struct {
	ID            string             `json:"id"`
	OwnerID       string             `json:"owner_id"`
	OwnerUsername string             `json:"owner_username"`
	Date          string             `json:"date"`
	Source        string             `json:"source"`
	Vendor        string             `json:"vendor,omitempty"`
	FileName      string             `json:"file_name,omitempty"`
	FileKind      string             `json:"file_kind,omitempty"`
	FileSize      int64              `json:"file_size,omitempty"`
	TotalAmount   string             `json:"total_amount"`
	Status        string             `json:"status"`
	LineItems     []LineItemResponse `json:"line_items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type InvoiceListResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, LineItemResponse{
			ProductID:   formatID(li.ProductID),
			ProductName: li.ProductName,
			Quantity:    li.Quantity.String(),
			UnitPrice:   li.UnitPrice.StringFixed(2),
			Subtotal:    li.Subtotal.StringFixed(2),
		})
	}
	return InvoiceResponse{
		ID:            formatID(inv.ID),
		OwnerID:       formatID(inv.OwnerID),
		OwnerUsername: inv.OwnerUsername,
		Date:          inv.Date.Format("2006-01-02"),
		Source:        string(inv.Source),
		Vendor:        inv.Vendor,
		FileName:      inv.OriginalFileName,
		FileKind:      string(inv.FileKind),
		FileSize:      inv.FileSize,
		TotalAmount:   inv.TotalAmount.StringFixed(2),
		Status:        string(inv.Status),
		LineItems:     items,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func FromInvoices(invoices []entities.Invoice, nextCursor string) InvoiceListResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return InvoiceListResponse{Invoices: out, NextCursor: nextCursor}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
