package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// WarehouseService manages storage locations. A warehouse that has
// ledger history is deactivated on delete, never removed, so old
// movements keep a valid reference.
type WarehouseService struct {
	repo         *repository.WarehouseRepository
	activityRepo *repository.ActivityLogRepository
}

func NewWarehouseService(repo *repository.WarehouseRepository, activityRepo *repository.ActivityLogRepository) *WarehouseService {
	return &WarehouseService{repo: repo, activityRepo: activityRepo}
}

type WarehouseRequest struct {
	Code     string          `json:"code" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Address  string          `json:"address"`
	Manager  string          `json:"manager"`
	Capacity decimal.Decimal `json:"capacity"` // tons
	Notes    string          `json:"notes"`
}

func (s *WarehouseService) CreateWarehouse(req WarehouseRequest, actorID string) (*entity.Warehouse, error) {
	if req.Capacity.IsNegative() {
		return nil, apperr.Validationf("capacity must not be negative")
	}
	warehouse := &entity.Warehouse{
		ID:       uuid.New().String(),
		Code:     req.Code,
		Name:     req.Name,
		Address:  req.Address,
		Manager:  req.Manager,
		Capacity: req.Capacity,
		Notes:    req.Notes,
		IsActive: true,
	}
	if err := s.repo.Create(warehouse); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("warehouse code %s already exists", req.Code)
		}
		return nil, apperr.Internalf(err, "create warehouse")
	}
	s.activityRepo.Log("warehouse", warehouse.ID, warehouse.Code, entity.ActionCreate, "", "", "warehouse created", actorID)
	return warehouse, nil
}

func (s *WarehouseService) GetWarehouse(id string) (*entity.Warehouse, error) {
	warehouse, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("warehouse %s not found", id)
		}
		return nil, apperr.Internalf(err, "load warehouse")
	}
	return warehouse, nil
}

func (s *WarehouseService) UpdateWarehouse(id string, req WarehouseRequest, actorID string) (*entity.Warehouse, error) {
	if req.Capacity.IsNegative() {
		return nil, apperr.Validationf("capacity must not be negative")
	}
	warehouse, err := s.GetWarehouse(id)
	if err != nil {
		return nil, err
	}
	warehouse.Code = req.Code
	warehouse.Name = req.Name
	warehouse.Address = req.Address
	warehouse.Manager = req.Manager
	warehouse.Capacity = req.Capacity
	warehouse.Notes = req.Notes

	if err := s.repo.Save(warehouse); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("warehouse code %s already exists", req.Code)
		}
		return nil, apperr.Internalf(err, "save warehouse")
	}
	s.activityRepo.Log("warehouse", warehouse.ID, warehouse.Code, entity.ActionUpdate, "", "", "warehouse updated", actorID)
	return warehouse, nil
}

// DeleteWarehouse removes an unused warehouse. One with movement
// history is deactivated instead and reported back as such.
func (s *WarehouseService) DeleteWarehouse(id, actorID string) (deactivated bool, err error) {
	warehouse, err := s.GetWarehouse(id)
	if err != nil {
		return false, err
	}
	hasHistory, err := s.repo.HasMovements(id)
	if err != nil {
		return false, apperr.Internalf(err, "check warehouse history")
	}
	if hasHistory {
		warehouse.IsActive = false
		if err := s.repo.Save(warehouse); err != nil {
			return false, apperr.Internalf(err, "deactivate warehouse")
		}
		s.activityRepo.Log("warehouse", warehouse.ID, warehouse.Code, entity.ActionUpdate, "", "", "warehouse deactivated", actorID)
		return true, nil
	}
	if err := s.repo.Delete(id); err != nil {
		return false, apperr.Internalf(err, "delete warehouse")
	}
	s.activityRepo.Log("warehouse", warehouse.ID, warehouse.Code, entity.ActionDelete, "", "", "warehouse deleted", actorID)
	return false, nil
}

func (s *WarehouseService) ListWarehouses(activeOnly bool, keyword string, page, size int) ([]entity.Warehouse, int64, error) {
	return s.repo.List(activeOnly, keyword, page, size)
}
