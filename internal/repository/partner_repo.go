package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

// PartnerRepository holds farmers and customers, the two order
// counterparties.
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) WithTx(tx *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: tx}
}

func (r *PartnerRepository) DB() *gorm.DB {
	return r.db
}

// --- Farmer ---

func (r *PartnerRepository) CreateFarmer(f *entity.Farmer) error {
	return r.db.Create(f).Error
}

func (r *PartnerRepository) SaveFarmer(f *entity.Farmer) error {
	return r.db.Save(f).Error
}

func (r *PartnerRepository) GetFarmerByID(id string) (*entity.Farmer, error) {
	var f entity.Farmer
	err := r.db.Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PartnerRepository) DeleteFarmer(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Farmer{}).Error
}

// LastFarmerCode returns the highest sequential farmer code, "" when
// none. Unscoped so deleted farmers cannot free a code; random-suffix
// fallback codes are excluded.
func (r *PartnerRepository) LastFarmerCode() (string, error) {
	var f entity.Farmer
	err := r.db.Unscoped().Select("farmer_code").
		Where("farmer_code ~ '^F-[0-9]{6,}$'").
		Order("length(farmer_code) DESC, farmer_code DESC").Limit(1).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return f.FarmerCode, nil
}

type FarmerListParams struct {
	FarmerType string
	Region     string
	ActiveOnly bool
	Keyword    string
	Page       int
	Size       int
}

func (r *PartnerRepository) ListFarmers(params FarmerListParams) ([]entity.Farmer, int64, error) {
	query := r.db.Model(&entity.Farmer{})
	if params.FarmerType != "" {
		query = query.Where("farmer_type = ?", params.FarmerType)
	}
	if params.Region != "" {
		query = query.Where("farming_region ILIKE ?", "%"+params.Region+"%")
	}
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR farmer_code ILIKE ?", kw, kw)
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
	var farmers []entity.Farmer
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&farmers).Error
	return farmers, total, err
}

// --- Customer ---

func (r *PartnerRepository) CreateCustomer(c *entity.Customer) error {
	return r.db.Create(c).Error
}

func (r *PartnerRepository) SaveCustomer(c *entity.Customer) error {
	return r.db.Save(c).Error
}

func (r *PartnerRepository) GetCustomerByID(id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PartnerRepository) DeleteCustomer(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Customer{}).Error
}

// LastCustomerCode returns the highest sequential customer code, ""
// when none. Unscoped so deleted customers cannot free a code;
// random-suffix fallback codes are excluded.
func (r *PartnerRepository) LastCustomerCode() (string, error) {
	var c entity.Customer
	err := r.db.Unscoped().Select("customer_code").
		Where("customer_code ~ '^C-[0-9]{6,}$'").
		Order("length(customer_code) DESC, customer_code DESC").Limit(1).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.CustomerCode, nil
}

type CustomerListParams struct {
	CustomerType string
	ActiveOnly   bool
	Keyword      string
	Page         int
	Size         int
}

func (r *PartnerRepository) ListCustomers(params CustomerListParams) ([]entity.Customer, int64, error) {
	query := r.db.Model(&entity.Customer{})
	if params.CustomerType != "" {
		query = query.Where("customer_type = ?", params.CustomerType)
	}
	if params.ActiveOnly {
		query = query.Where("is_active = true")
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("name ILIKE ? OR customer_code ILIKE ?", kw, kw)
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
	var customers []entity.Customer
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&customers).Error
	return customers, total, err
}
