package repository

import (
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

type WarehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{db: db}
}

func (r *WarehouseRepository) Create(w *entity.Warehouse) error {
	return r.db.Create(w).Error
}

func (r *WarehouseRepository) Save(w *entity.Warehouse) error {
	return r.db.Save(w).Error
}

func (r *WarehouseRepository) GetByID(id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.db.Where("id = ?", id).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WarehouseRepository) GetByCode(code string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.db.Where("code = ?", code).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// HasMovements reports whether any ledger entry references the warehouse.
// Warehouses with history are deactivated, never deleted.
func (r *WarehouseRepository) HasMovements(id string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.StockMovement{}).
		Where("warehouse_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *WarehouseRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Warehouse{}).Error
}

func (r *WarehouseRepository) List(activeOnly bool, keyword string, page, size int) ([]entity.Warehouse, int64, error) {
	query := r.db.Model(&entity.Warehouse{})
	if activeOnly {
		query = query.Where("is_active = true")
	}
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", kw, kw)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	var warehouses []entity.Warehouse
	err := query.Order("name ASC").
		Offset((page - 1) * size).Limit(size).Find(&warehouses).Error
	return warehouses, total, err
}
