package service

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/config"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// Services bundles every service for wiring.
type Services struct {
	Warehouse *WarehouseService
	Product   *ProductService
	Partner   *PartnerService
	Inventory *InventoryService
	Order     *OrderService
	Payment   *PaymentService
	Shipping  *ShippingService
	Dashboard *DashboardService
	Activity  *ActivityService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	return &Services{
		Warehouse: NewWarehouseService(repos.Warehouse, repos.ActivityLog),
		Product:   NewProductService(repos.Product, repos.ActivityLog),
		Partner:   NewPartnerService(repos.Partner, repos.ActivityLog),
		Inventory: NewInventoryService(repos.Inventory, repos.Warehouse, repos.Product, repos.ActivityLog, cfg.Inventory),
		Order:     NewOrderService(repos.Order, repos.Partner, repos.Product, repos.ActivityLog),
		Payment:   NewPaymentService(repos.Payment, repos.Order, repos.ActivityLog),
		Shipping:  NewShippingService(repos.Shipping, repos.Order, repos.ActivityLog),
		Dashboard: NewDashboardService(db, rdb),
		Activity:  NewActivityService(repos.ActivityLog),
	}
}

// ActivityService exposes the audit trail read side.
type ActivityService struct {
	repo *repository.ActivityLogRepository
}

func NewActivityService(repo *repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) List(params repository.ActivityListParams) ([]entity.ActivityLog, int64, error) {
	return s.repo.List(params)
}
