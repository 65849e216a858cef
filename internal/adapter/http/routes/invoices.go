package routes

import (
	"invoicetracker/internal/adapter/http/handlers"
	"invoicetracker/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices = "/invoices"
	PathProducts = "/products"
)

func addInvoiceRoutes(rg *gin.RouterGroup, auth *middleware.AuthMiddleware, invoiceHandler *handlers.InvoiceHandler, productHandler *handlers.ProductHandler) {
	invoices := rg.Group(PathInvoices, auth.Authenticate())
	{
		invoices.POST("/screen", invoiceHandler.ScreenUpload)
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PATCH("/:id", invoiceHandler.UpdateInvoice)
		invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		invoices.GET("/:id/file", invoiceHandler.DownloadInvoiceFile)
		invoices.GET("/:id/audit", invoiceHandler.GetInvoiceAudit)
	}

	products := rg.Group(PathProducts, auth.Authenticate())
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)

		// Catalog mutations are admin-only; reads stay open to every
		// authenticated user so the invoice form can list products.
		admin := products.Group("", auth.RequireAdmin())
		admin.POST("", productHandler.CreateProduct)
		admin.PUT("/:id", productHandler.UpdateProduct)
		admin.DELETE("/:id", productHandler.DeleteProduct)
	}
}
