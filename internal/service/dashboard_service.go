package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
)

const (
	dashboardCacheKey = "freshport:dashboard:summary"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardService aggregates the operational summary shown on the
// landing screen. The summary is cached in redis briefly; a nil client
// degrades to querying every time.
type DashboardService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewDashboardService(db *gorm.DB, rdb *redis.Client) *DashboardService {
	return &DashboardService{db: db, rdb: rdb}
}

type DashboardSummary struct {
	Warehouses int64 `json:"warehouses"`
	Products   int64 `json:"products"`
	Farmers    int64 `json:"farmers"`
	Customers  int64 `json:"customers"`

	TotalStockQuantity decimal.Decimal `json:"total_stock_quantity"`
	LowStockItems      int64           `json:"low_stock_items"`

	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	PendingPayment int64            `json:"pending_payment_orders"`

	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	SaleTotal     decimal.Decimal `json:"sale_total"`

	GeneratedAt time.Time `json:"generated_at"`
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var summary DashboardSummary
			if json.Unmarshal(cached, &summary) == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.build()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.rdb.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary, used after bulk imports.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, dashboardCacheKey)
	}
}

func (s *DashboardService) build() (*DashboardSummary, error) {
	summary := &DashboardSummary{
		OrdersByStatus: make(map[string]int64),
		GeneratedAt:    time.Now(),
	}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&entity.Warehouse{}, &summary.Warehouses},
		{&entity.Product{}, &summary.Products},
		{&entity.Farmer{}, &summary.Farmers},
		{&entity.Customer{}, &summary.Customers},
	}
	for _, c := range counts {
		if err := s.db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, apperr.Internalf(err, "count records")
		}
	}

	var stockTotal struct{ Total decimal.Decimal }
	if err := s.db.Raw(`SELECT COALESCE(SUM(quantity), 0) AS total FROM inventory_stocks`).
		Scan(&stockTotal).Error; err != nil {
		return nil, apperr.Internalf(err, "sum stock")
	}
	summary.TotalStockQuantity = stockTotal.Total

	if err := s.db.Model(&entity.InventoryStock{}).
		Where("quantity <= min_stock_level AND min_stock_level > 0").
		Count(&summary.LowStockItems).Error; err != nil {
		return nil, apperr.Internalf(err, "count low stock")
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").Scan(&statusRows).Error; err != nil {
		return nil, apperr.Internalf(err, "count orders by status")
	}
	for _, row := range statusRows {
		summary.OrdersByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&entity.Order{}).
		Where("payment_status IN ?", []string{entity.PaymentPending, entity.PaymentPartial}).
		Count(&summary.PendingPayment).Error; err != nil {
		return nil, apperr.Internalf(err, "count pending payments")
	}

	var totals []struct {
		OrderType string
		Total     decimal.Decimal
	}
	if err := s.db.Model(&entity.Order{}).
		Select("order_type, COALESCE(SUM(total_amount), 0) AS total").
		Where("status NOT IN ?", []string{entity.OrderCancelled, entity.OrderReturned}).
		Group("order_type").Scan(&totals).Error; err != nil {
		return nil, apperr.Internalf(err, "sum order totals")
	}
	for _, row := range totals {
		switch row.OrderType {
		case entity.OrderTypePurchase:
			summary.PurchaseTotal = row.Total
		case entity.OrderTypeSale:
			summary.SaleTotal = row.Total
		}
	}

	return summary, nil
}
