package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API group. Paths keep the historical
// app-prefix/api shape with trailing slashes.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health.Live)
	r.GET("/health/live", h.Health.Live)
	r.GET("/health/ready", h.Health.Ready)

	inventory := r.Group("/inventory/api")
	{
		inventory.POST("/movements/create/", h.Inventory.CreateMovementBatch)
		inventory.POST("/movements/record/", h.Inventory.CreateMovement)
		inventory.GET("/movements/list/", h.Inventory.ListMovements)
		inventory.GET("/movements/:id/", h.Inventory.GetMovement)

		inventory.GET("/stock/list/", h.Inventory.ListStock)
		inventory.GET("/stock/detail/", h.Inventory.GetStock)
		inventory.PUT("/stock/levels/", h.Inventory.SetStockLevels)
		inventory.POST("/stock/recompute/", h.Inventory.Recompute)

		inventory.POST("/stock-takings/create/", h.Inventory.CreateStockTaking)
		inventory.GET("/stock-takings/list/", h.Inventory.ListStockTakings)
		inventory.GET("/stock-takings/:id/", h.Inventory.GetStockTaking)
		inventory.POST("/stock-takings/:id/counts/", h.Inventory.RecordCount)
		inventory.POST("/stock-takings/:id/complete/", h.Inventory.CompleteStockTaking)
		inventory.POST("/stock-takings/:id/cancel/", h.Inventory.CancelStockTaking)
	}

	orders := r.Group("/orders/api")
	{
		orders.POST("/create/", h.Order.Create)
		orders.GET("/list/", h.Order.List)
		orders.GET("/:id/", h.Order.Get)
		orders.PUT("/:id/", h.Order.Update)
		orders.DELETE("/:id/", h.Order.Delete)
		orders.POST("/:id/status/", h.Order.ChangeStatus)
		orders.GET("/:id/history/", h.Order.StatusHistory)
		orders.GET("/:id/payments/", h.Payment.ListByOrder)
		orders.POST("/:id/refund/", h.Payment.RefundOrder)
		orders.GET("/:id/documents/", h.Shipping.ListDocumentsByOrder)
	}

	farmers := r.Group("/farmers/api")
	{
		farmers.POST("/create/", h.Partner.CreateFarmer)
		farmers.GET("/list/", h.Partner.ListFarmers)
		farmers.GET("/:id/", h.Partner.GetFarmer)
		farmers.PUT("/:id/", h.Partner.UpdateFarmer)
		farmers.DELETE("/:id/", h.Partner.DeleteFarmer)
	}

	customers := r.Group("/customers/api")
	{
		customers.POST("/create/", h.Partner.CreateCustomer)
		customers.GET("/list/", h.Partner.ListCustomers)
		customers.GET("/:id/", h.Partner.GetCustomer)
		customers.PUT("/:id/", h.Partner.UpdateCustomer)
		customers.DELETE("/:id/", h.Partner.DeleteCustomer)
	}

	products := r.Group("/products/api")
	{
		products.POST("/create/", h.Product.Create)
		products.GET("/list/", h.Product.List)
		products.GET("/:id/", h.Product.Get)
		products.PUT("/:id/", h.Product.Update)
		products.DELETE("/:id/", h.Product.Delete)
		products.POST("/categories/create/", h.Product.CreateCategory)
		products.GET("/categories/list/", h.Product.ListCategories)
		products.POST("/units/create/", h.Product.CreateUnit)
		products.GET("/units/list/", h.Product.ListUnits)
	}

	warehouses := r.Group("/warehouses/api")
	{
		warehouses.POST("/create/", h.Warehouse.Create)
		warehouses.GET("/list/", h.Warehouse.List)
		warehouses.GET("/:id/", h.Warehouse.Get)
		warehouses.PUT("/:id/", h.Warehouse.Update)
		warehouses.DELETE("/:id/", h.Warehouse.Delete)
	}

	payments := r.Group("/payments/api")
	{
		payments.POST("/create/", h.Payment.Create)
		payments.GET("/list/", h.Payment.List)
		payments.GET("/:id/", h.Payment.Get)
	}

	shipping := r.Group("/shipping/api")
	{
		shipping.POST("/declarations/create/", h.Shipping.CreateDeclaration)
		shipping.GET("/declarations/list/", h.Shipping.ListDeclarations)
		shipping.GET("/declarations/:id/", h.Shipping.GetDeclaration)
		shipping.PUT("/declarations/:id/", h.Shipping.UpdateDeclaration)
		shipping.POST("/declarations/:id/status/", h.Shipping.ChangeDeclarationStatus)
		shipping.POST("/documents/create/", h.Shipping.AddDocument)
	}

	dashboard := r.Group("/dashboard/api")
	{
		dashboard.GET("/summary/", h.Dashboard.Summary)
	}

	activity := r.Group("/activity/api")
	{
		activity.GET("/logs/", h.Dashboard.ListActivity)
	}
}
