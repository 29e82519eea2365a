package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/middleware"
	"github.com/freshport/freshport/internal/service"
)

// Handlers bundles every HTTP handler for routing.
type Handlers struct {
	Warehouse *WarehouseHandler
	Product   *ProductHandler
	Partner   *PartnerHandler
	Inventory *InventoryHandler
	Order     *OrderHandler
	Payment   *PaymentHandler
	Shipping  *ShippingHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler
}

func NewHandlers(services *service.Services, db *gorm.DB, rdb *redis.Client) *Handlers {
	return &Handlers{
		Warehouse: NewWarehouseHandler(services.Warehouse),
		Product:   NewProductHandler(services.Product),
		Partner:   NewPartnerHandler(services.Partner),
		Inventory: NewInventoryHandler(services.Inventory),
		Order:     NewOrderHandler(services.Order),
		Payment:   NewPaymentHandler(services.Payment),
		Shipping:  NewShippingHandler(services.Shipping),
		Dashboard: NewDashboardHandler(services.Dashboard, services.Activity),
		Health:    NewHealthHandler(db, rdb),
	}
}

// Every endpoint answers with the same envelope: {success: true, data}
// on the happy path, {success: false, error} otherwise.

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, err error) {
	c.JSON(apperr.StatusOf(err), gin.H{"success": false, "error": err.Error()})
}

func failBind(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
}

// paginated wraps a list response with its paging metadata.
func paginated(items interface{}, total int64, page, size int) gin.H {
	return gin.H{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": size,
	}
}

// pagination reads page/per_page from the query string; size also
// accepted as an alias for per_page.
func pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := c.Query("per_page")
	if perPage == "" {
		perPage = c.DefaultQuery("size", "20")
	}
	size, _ = strconv.Atoi(perPage)
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return page, size
}

func actor(c *gin.Context) string {
	if id := c.GetString("actor_id"); id != "" {
		return id
	}
	return middleware.DefaultActor
}
