package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// ProductService manages the fruit catalog, categories and units.
type ProductService struct {
	repo         *repository.ProductRepository
	activityRepo *repository.ActivityLogRepository
}

func NewProductService(repo *repository.ProductRepository, activityRepo *repository.ActivityLogRepository) *ProductService {
	return &ProductService{repo: repo, activityRepo: activityRepo}
}

type ProductRequest struct {
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	CategoryID    string          `json:"category_id"`
	UnitID        string          `json:"unit_id"`
	Description   string          `json:"description"`
	Origin        string          `json:"origin"`
	OriginCountry string          `json:"origin_country"`
	QualityGrade  string          `json:"quality_grade"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	ExportPrice   decimal.Decimal `json:"export_price"`
	ShelfLifeDays int             `json:"shelf_life_days"`
	HSCode        string          `json:"hs_code"`
}

func (s *ProductService) validate(req ProductRequest) error {
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() || req.ExportPrice.IsNegative() {
		return apperr.Validationf("prices must not be negative")
	}
	if req.ShelfLifeDays < 0 {
		return apperr.Validationf("shelf_life_days must not be negative")
	}
	if req.Origin != "" && req.Origin != entity.OriginDomestic && req.Origin != entity.OriginImported {
		return apperr.Validationf("origin must be %q or %q", entity.OriginDomestic, entity.OriginImported)
	}
	switch req.QualityGrade {
	case "", entity.GradeExport, entity.GradePremium, entity.GradeStandard:
	default:
		return apperr.Validationf("quality_grade must be A, B or C")
	}
	return nil
}

func (s *ProductService) CreateProduct(req ProductRequest, actorID string) (*entity.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	origin := req.Origin
	if origin == "" {
		origin = entity.OriginDomestic
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          req.Code,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		UnitID:        req.UnitID,
		Description:   req.Description,
		Origin:        origin,
		OriginCountry: req.OriginCountry,
		QualityGrade:  req.QualityGrade,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		ExportPrice:   req.ExportPrice,
		ShelfLifeDays: req.ShelfLifeDays,
		HSCode:        req.HSCode,
		IsActive:      true,
	}
	if err := s.repo.Create(product); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("product code %s already exists", req.Code)
		}
		return nil, apperr.Internalf(err, "create product")
	}
	s.activityRepo.Log("product", product.ID, product.Code, entity.ActionCreate, "", "", "product created", actorID)
	return product, nil
}

func (s *ProductService) GetProduct(id string) (*entity.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("product %s not found", id)
		}
		return nil, apperr.Internalf(err, "load product")
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(id string, req ProductRequest, actorID string) (*entity.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	product.Code = req.Code
	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.UnitID = req.UnitID
	product.Description = req.Description
	if req.Origin != "" {
		product.Origin = req.Origin
	}
	product.OriginCountry = req.OriginCountry
	product.QualityGrade = req.QualityGrade
	product.CostPrice = req.CostPrice
	product.SellingPrice = req.SellingPrice
	product.ExportPrice = req.ExportPrice
	product.ShelfLifeDays = req.ShelfLifeDays
	product.HSCode = req.HSCode
	product.Category = nil
	product.Unit = nil

	if err := s.repo.Save(product); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("product code %s already exists", req.Code)
		}
		return nil, apperr.Internalf(err, "save product")
	}
	s.activityRepo.Log("product", product.ID, product.Code, entity.ActionUpdate, "", "", "product updated", actorID)
	return product, nil
}

func (s *ProductService) DeleteProduct(id, actorID string) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return apperr.Internalf(err, "delete product")
	}
	s.activityRepo.Log("product", product.ID, product.Code, entity.ActionDelete, "", "", "product deleted", actorID)
	return nil
}

func (s *ProductService) ListProducts(params repository.ProductListParams) ([]entity.Product, int64, error) {
	return s.repo.List(params)
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *ProductService) CreateCategory(req CategoryRequest) (*entity.Category, error) {
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.CreateCategory(category); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("category %s already exists", req.Name)
		}
		return nil, apperr.Internalf(err, "create category")
	}
	return category, nil
}

func (s *ProductService) ListCategories() ([]entity.Category, error) {
	return s.repo.ListCategories()
}

type UnitRequest struct {
	Name        string `json:"name" binding:"required"`
	Symbol      string `json:"symbol" binding:"required"`
	Description string `json:"description"`
}

func (s *ProductService) CreateUnit(req UnitRequest) (*entity.Unit, error) {
	unit := &entity.Unit{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
	}
	if err := s.repo.CreateUnit(unit); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("unit %s already exists", req.Name)
		}
		return nil, apperr.Internalf(err, "create unit")
	}
	return unit, nil
}

func (s *ProductService) ListUnits() ([]entity.Unit, error) {
	return s.repo.ListUnits()
}
