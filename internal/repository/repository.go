package repository

import "gorm.io/gorm"

// Repositories bundles every repository for wiring.
type Repositories struct {
	Warehouse   *WarehouseRepository
	Product     *ProductRepository
	Partner     *PartnerRepository
	Inventory   *InventoryRepository
	Order       *OrderRepository
	Payment     *PaymentRepository
	Shipping    *ShippingRepository
	ActivityLog *ActivityLogRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Warehouse:   NewWarehouseRepository(db),
		Product:     NewProductRepository(db),
		Partner:     NewPartnerRepository(db),
		Inventory:   NewInventoryRepository(db),
		Order:       NewOrderRepository(db),
		Payment:     NewPaymentRepository(db),
		Shipping:    NewShippingRepository(db),
		ActivityLog: NewActivityLogRepository(db),
	}
}
