package repository

import (
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Save(p *entity.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Preload("Category").Preload("Unit").
		Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(code string) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Where("code = ?", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Product{}).Error
}

type ProductListParams struct {
	CategoryID   string
	Origin       string
	QualityGrade string
	ActiveOnly   bool
	Keyword      string
	Page         int
	Size         int
}

func (r *ProductRepository) List(params ProductListParams) ([]entity.Product, int64, error) {
	query := r.db.Model(&entity.Product{})
	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Origin != "" {
		query = query.Where("origin = ?", params.Origin)
	}
	if params.QualityGrade != "" {
		query = query.Where("quality_grade = ?", params.QualityGrade)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", kw, kw)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var products []entity.Product
	err := query.Preload("Category").Preload("Unit").
		Order("name ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&products).Error
	return products, total, err
}

// --- Category / Unit ---

func (r *ProductRepository) CreateCategory(c *entity.Category) error {
	return r.db.Create(c).Error
}

func (r *ProductRepository) ListCategories() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *ProductRepository) CreateUnit(u *entity.Unit) error {
	return r.db.Create(u).Error
}

func (r *ProductRepository) ListUnits() ([]entity.Unit, error) {
	var units []entity.Unit
	err := r.db.Order("name ASC").Find(&units).Error
	return units, err
}
