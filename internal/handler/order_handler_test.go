package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
	"github.com/freshport/freshport/internal/testutil"
)

func setupOrderAPI(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	orderSvc := service.NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog)
	h := NewOrderHandler(orderSvc)

	router := testutil.SetupRouter()
	api := router.Group("/orders/api")
	api.POST("/create/", h.Create)
	api.GET("/list/", h.List)
	api.GET("/:id/", h.Get)
	api.POST("/:id/status/", h.ChangeStatus)
	api.GET("/:id/history/", h.StatusHistory)

	testutil.SeedCustomer(t, db, "cust-1", "C-000001", "Saigon Fruit Trading")
	testutil.SeedProduct(t, db, "prod-1", "MANGO-01", "Cat Chu mango", decimal.NewFromInt(2000))
	testutil.SeedProduct(t, db, "prod-2", "DRAGON-01", "Dragon fruit", decimal.NewFromInt(3000))
	return db, router
}

func TestOrderCreateEndpoint(t *testing.T) {
	_, router := setupOrderAPI(t)

	w := testutil.DoRequest(router, http.MethodPost, "/orders/api/create/", map[string]interface{}{
		"order_type": "sale",
		"partner_id": "cust-1",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 10, "unit_price": 2000},
			{"product_id": "prod-2", "quantity": 5, "unit_price": 3000},
		},
		"discount_percent": 10,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	if data["order_number"].(string) != "SO-000001" {
		t.Errorf("order_number = %v, want SO-000001", data["order_number"])
	}
	if data["subtotal"].(string) != "35000" {
		t.Errorf("subtotal = %v, want 35000", data["subtotal"])
	}
	if data["total_amount"].(string) != "31500" {
		t.Errorf("total_amount = %v, want 31500", data["total_amount"])
	}

	orderID := data["id"].(string)
	w = testutil.DoRequest(router, http.MethodGet, "/orders/api/"+orderID+"/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	fetched := testutil.ParseResponse(w)["data"].(map[string]interface{})
	details := fetched["details"].([]interface{})
	if len(details) != 2 {
		t.Errorf("expected 2 details, got %d", len(details))
	}
	if fetched["customer"] == nil {
		t.Error("order detail should embed the customer")
	}
}

func TestOrderCreateBadPartner(t *testing.T) {
	_, router := setupOrderAPI(t)

	w := testutil.DoRequest(router, http.MethodPost, "/orders/api/create/", map[string]interface{}{
		"order_type": "sale",
		"partner_id": "missing",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 1},
		},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body = %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["success"] != false {
		t.Errorf("expected failure envelope, got %v", resp)
	}
}

func TestOrderStatusEndpoint(t *testing.T) {
	_, router := setupOrderAPI(t)

	w := testutil.DoRequest(router, http.MethodPost, "/orders/api/create/", map[string]interface{}{
		"order_type": "sale",
		"partner_id": "cust-1",
		"items": []map[string]interface{}{
			{"product_id": "prod-1", "quantity": 1},
		},
	})
	orderID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(router, http.MethodPost, "/orders/api/"+orderID+"/status/", map[string]interface{}{
		"status": "confirmed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body = %s", w.Code, w.Body.String())
	}

	// Backward transition comes back as a 400 failure envelope.
	w = testutil.DoRequest(router, http.MethodPost, "/orders/api/"+orderID+"/status/", map[string]interface{}{
		"status": "draft",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("backward status = %d, want 400", w.Code)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/orders/api/"+orderID+"/history/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	history := testutil.ParseResponse(w)["data"].([]interface{})
	if len(history) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(history))
	}
}
