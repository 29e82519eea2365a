package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Master data
		&Warehouse{},
		&Category{},
		&Unit{},
		&Product{},
		&Farmer{},
		&Customer{},

		// Stock ledger
		&InventoryStock{},
		&StockMovement{},
		&StockTaking{},
		&StockTakingDetail{},

		// Orders
		&Order{},
		&OrderDetail{},
		&OrderStatusHistory{},

		// Money
		&Payment{},

		// Customs / shipping
		&CustomsDeclaration{},
		&ShippingDocument{},

		// Audit
		&ActivityLog{},
	)
}
