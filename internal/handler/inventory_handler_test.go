package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/config"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
	"github.com/freshport/freshport/internal/testutil"
)

func setupInventoryAPI(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := service.NewInventoryService(repos.Inventory, repos.Warehouse, repos.Product, repos.ActivityLog,
		config.InventoryConfig{NegativeStock: config.NegativeStockClamp})
	h := NewInventoryHandler(svc)

	router := testutil.SetupRouter()
	api := router.Group("/inventory/api")
	api.POST("/movements/create/", h.CreateMovementBatch)
	api.GET("/movements/list/", h.ListMovements)
	api.GET("/movements/:id/", h.GetMovement)
	api.GET("/stock/list/", h.ListStock)
	return db, router
}

func seedInventoryAPI(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedWarehouse(t, db, "wh-1", "WH-01", "Cold storage A")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", decimal.NewFromInt(35000))
	testutil.SeedProduct(t, db, "prod-2", "DRAGON-01", "Dragon fruit", decimal.NewFromInt(28000))
}

func TestMovementBatchEndpoint(t *testing.T) {
	db, router := setupInventoryAPI(t)
	seedInventoryAPI(t, db)

	w := testutil.DoRequest(router, http.MethodPost, "/inventory/api/movements/create/", map[string]interface{}{
		"warehouse_id":   "wh-1",
		"movement_type":  "inbound",
		"reference_type": "order",
		"reference_id":   "po-1",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 10, "unit_cost": 2000},
			{"product_id": "prod-2", "quantity": 5, "unit_cost": 3000},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	if data["total_items"].(float64) != 2 {
		t.Errorf("total_items = %v, want 2", data["total_items"])
	}
	if data["total_value"].(string) != "35000" {
		t.Errorf("total_value = %v, want 35000", data["total_value"])
	}

	// The ledger now has two entries.
	w = testutil.DoRequest(router, http.MethodGet, "/inventory/api/movements/list/?warehouse_id=wh-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	list := resp["data"].(map[string]interface{})
	if list["total"].(float64) != 2 {
		t.Errorf("movement total = %v, want 2", list["total"])
	}

	// And each movement loads by id with its relations.
	items := list["items"].([]interface{})
	movementID := items[0].(map[string]interface{})["id"].(string)
	w = testutil.DoRequest(router, http.MethodGet, "/inventory/api/movements/"+movementID+"/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d", w.Code)
	}
	detail := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if detail["warehouse"] == nil || detail["product"] == nil {
		t.Error("movement detail should embed warehouse and product")
	}
}

func TestMovementBatchInsufficientStock(t *testing.T) {
	db, router := setupInventoryAPI(t)
	seedInventoryAPI(t, db)

	w := testutil.DoRequest(router, http.MethodPost, "/inventory/api/movements/create/", map[string]interface{}{
		"warehouse_id":  "wh-1",
		"movement_type": "outbound",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 3},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != false {
		t.Errorf("expected failure envelope, got %v", resp)
	}
	if resp["error"] == nil || resp["error"] == "" {
		t.Error("error message must be present")
	}

	var count int64
	if err := db.Model(&entity.StockMovement{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("failed batch wrote %d movements", count)
	}
}

func TestMovementBatchUnknownType(t *testing.T) {
	db, router := setupInventoryAPI(t)
	seedInventoryAPI(t, db)

	w := testutil.DoRequest(router, http.MethodPost, "/inventory/api/movements/create/", map[string]interface{}{
		"warehouse_id":  "wh-1",
		"movement_type": "teleport",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 1},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestMovementUnknownIDReturns404(t *testing.T) {
	db, router := setupInventoryAPI(t)
	seedInventoryAPI(t, db)

	w := testutil.DoRequest(router, http.MethodGet, "/inventory/api/movements/3f1f3f1f-0000-0000-0000-000000000000/", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != false {
		t.Errorf("expected failure envelope, got %v", resp)
	}
}
