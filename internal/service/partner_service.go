package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// PartnerService manages farmers and customers.
type PartnerService struct {
	repo         *repository.PartnerRepository
	activityRepo *repository.ActivityLogRepository
}

func NewPartnerService(repo *repository.PartnerRepository, activityRepo *repository.ActivityLogRepository) *PartnerService {
	return &PartnerService{repo: repo, activityRepo: activityRepo}
}

// --- Farmers ---

type FarmerRequest struct {
	Name                string          `json:"name" binding:"required"`
	FarmerType          string          `json:"farmer_type"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Address             string          `json:"address"`
	FarmingRegion       string          `json:"farming_region"`
	TotalFarmArea       decimal.Decimal `json:"total_farm_area"`
	MainCrops           string          `json:"main_crops"`
	Certifications      string          `json:"certifications"`
	CertificationExpiry string          `json:"certification_expiry"` // 2006-01-02
	BankName            string          `json:"bank_name"`
	BankAccount         string          `json:"bank_account"`
	TaxCode             string          `json:"tax_code"`
}

func (s *PartnerService) CreateFarmer(req FarmerRequest, actorID string) (*entity.Farmer, error) {
	farmerType := req.FarmerType
	if farmerType == "" {
		farmerType = entity.FarmerIndividual
	}
	switch farmerType {
	case entity.FarmerIndividual, entity.FarmerCooperative, entity.FarmerEnterprise:
	default:
		return nil, apperr.Validationf("unknown farmer_type %q", req.FarmerType)
	}
	if req.TotalFarmArea.IsNegative() {
		return nil, apperr.Validationf("total_farm_area must not be negative")
	}

	farmer := &entity.Farmer{
		ID:            uuid.New().String(),
		Name:          req.Name,
		FarmerType:    farmerType,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		FarmingRegion: req.FarmingRegion,
		TotalFarmArea: req.TotalFarmArea,
		MainCrops:     req.MainCrops,
		BankName:      req.BankName,
		BankAccount:   req.BankAccount,
		TaxCode:       req.TaxCode,
		IsActive:      true,
	}
	if req.Certifications != "" {
		farmer.Certifications = req.Certifications
	}
	if req.CertificationExpiry != "" {
		d, err := time.Parse("2006-01-02", req.CertificationExpiry)
		if err != nil {
			return nil, apperr.Validationf("certification_expiry must be YYYY-MM-DD")
		}
		farmer.CertificationExpiry = &d
	}

	last, err := s.repo.LastFarmerCode()
	if err != nil {
		return nil, apperr.Internalf(err, "scan farmer codes")
	}
	farmer.FarmerCode = nextCode("F", last)
	if err := s.repo.CreateFarmer(farmer); err != nil {
		if isDuplicate(err) {
			if req.TaxCode != "" {
				// Either the code sequence raced or the tax code exists;
				// retry with a fallback code to find out.
				farmer.FarmerCode = fallbackCode("F")
				if retryErr := s.repo.CreateFarmer(farmer); retryErr == nil {
					s.activityRepo.Log("farmer", farmer.ID, farmer.FarmerCode, entity.ActionCreate, "", "", "farmer created", actorID)
					return farmer, nil
				}
				return nil, apperr.Duplicatef("farmer with tax code %s already exists", req.TaxCode)
			}
			farmer.FarmerCode = fallbackCode("F")
			if err := s.repo.CreateFarmer(farmer); err != nil {
				return nil, apperr.Internalf(err, "create farmer")
			}
		} else {
			return nil, apperr.Internalf(err, "create farmer")
		}
	}

	s.activityRepo.Log("farmer", farmer.ID, farmer.FarmerCode, entity.ActionCreate, "", "", "farmer created", actorID)
	return farmer, nil
}

func (s *PartnerService) GetFarmer(id string) (*entity.Farmer, error) {
	farmer, err := s.repo.GetFarmerByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("farmer %s not found", id)
		}
		return nil, apperr.Internalf(err, "load farmer")
	}
	return farmer, nil
}

func (s *PartnerService) UpdateFarmer(id string, req FarmerRequest, actorID string) (*entity.Farmer, error) {
	farmer, err := s.GetFarmer(id)
	if err != nil {
		return nil, err
	}
	farmer.Name = req.Name
	if req.FarmerType != "" {
		switch req.FarmerType {
		case entity.FarmerIndividual, entity.FarmerCooperative, entity.FarmerEnterprise:
			farmer.FarmerType = req.FarmerType
		default:
			return nil, apperr.Validationf("unknown farmer_type %q", req.FarmerType)
		}
	}
	farmer.Phone = req.Phone
	farmer.Email = req.Email
	farmer.Address = req.Address
	farmer.FarmingRegion = req.FarmingRegion
	if !req.TotalFarmArea.IsZero() {
		if req.TotalFarmArea.IsNegative() {
			return nil, apperr.Validationf("total_farm_area must not be negative")
		}
		farmer.TotalFarmArea = req.TotalFarmArea
	}
	farmer.MainCrops = req.MainCrops
	if req.Certifications != "" {
		farmer.Certifications = req.Certifications
	}
	if req.CertificationExpiry != "" {
		d, err := time.Parse("2006-01-02", req.CertificationExpiry)
		if err != nil {
			return nil, apperr.Validationf("certification_expiry must be YYYY-MM-DD")
		}
		farmer.CertificationExpiry = &d
	}
	farmer.BankName = req.BankName
	farmer.BankAccount = req.BankAccount
	farmer.TaxCode = req.TaxCode

	if err := s.repo.SaveFarmer(farmer); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("farmer with tax code %s already exists", req.TaxCode)
		}
		return nil, apperr.Internalf(err, "save farmer")
	}
	s.activityRepo.Log("farmer", farmer.ID, farmer.FarmerCode, entity.ActionUpdate, "", "", "farmer updated", actorID)
	return farmer, nil
}

func (s *PartnerService) DeleteFarmer(id, actorID string) error {
	farmer, err := s.GetFarmer(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteFarmer(id); err != nil {
		return apperr.Internalf(err, "delete farmer")
	}
	s.activityRepo.Log("farmer", farmer.ID, farmer.FarmerCode, entity.ActionDelete, "", "", "farmer deleted", actorID)
	return nil
}

func (s *PartnerService) ListFarmers(params repository.FarmerListParams) ([]entity.Farmer, int64, error) {
	return s.repo.ListFarmers(params)
}

// --- Customers ---

type CustomerRequest struct {
	Name         string          `json:"name" binding:"required"`
	CustomerType string          `json:"customer_type"`
	ContactName  string          `json:"contact_name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	TaxCode      string          `json:"tax_code"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	PaymentTerms string          `json:"payment_terms"`
	Notes        string          `json:"notes"`
}

func (s *PartnerService) CreateCustomer(req CustomerRequest, actorID string) (*entity.Customer, error) {
	customerType := req.CustomerType
	if customerType == "" {
		customerType = entity.CustomerRetail
	}
	switch customerType {
	case entity.CustomerRetail, entity.CustomerWholesale, entity.CustomerDistributor, entity.CustomerExport:
	default:
		return nil, apperr.Validationf("unknown customer_type %q", req.CustomerType)
	}
	if req.CreditLimit.IsNegative() {
		return nil, apperr.Validationf("credit_limit must not be negative")
	}

	customer := &entity.Customer{
		ID:           uuid.New().String(),
		Name:         req.Name,
		CustomerType: customerType,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		TaxCode:      req.TaxCode,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
		Notes:        req.Notes,
		IsActive:     true,
	}

	last, err := s.repo.LastCustomerCode()
	if err != nil {
		return nil, apperr.Internalf(err, "scan customer codes")
	}
	customer.CustomerCode = nextCode("C", last)
	if err := s.repo.CreateCustomer(customer); err != nil {
		if isDuplicate(err) {
			if req.TaxCode != "" {
				customer.CustomerCode = fallbackCode("C")
				if retryErr := s.repo.CreateCustomer(customer); retryErr == nil {
					s.activityRepo.Log("customer", customer.ID, customer.CustomerCode, entity.ActionCreate, "", "", "customer created", actorID)
					return customer, nil
				}
				return nil, apperr.Duplicatef("customer with tax code %s already exists", req.TaxCode)
			}
			customer.CustomerCode = fallbackCode("C")
			if err := s.repo.CreateCustomer(customer); err != nil {
				return nil, apperr.Internalf(err, "create customer")
			}
		} else {
			return nil, apperr.Internalf(err, "create customer")
		}
	}

	s.activityRepo.Log("customer", customer.ID, customer.CustomerCode, entity.ActionCreate, "", "", "customer created", actorID)
	return customer, nil
}

func (s *PartnerService) GetCustomer(id string) (*entity.Customer, error) {
	customer, err := s.repo.GetCustomerByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("customer %s not found", id)
		}
		return nil, apperr.Internalf(err, "load customer")
	}
	return customer, nil
}

func (s *PartnerService) UpdateCustomer(id string, req CustomerRequest, actorID string) (*entity.Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}
	customer.Name = req.Name
	if req.CustomerType != "" {
		switch req.CustomerType {
		case entity.CustomerRetail, entity.CustomerWholesale, entity.CustomerDistributor, entity.CustomerExport:
			customer.CustomerType = req.CustomerType
		default:
			return nil, apperr.Validationf("unknown customer_type %q", req.CustomerType)
		}
	}
	customer.ContactName = req.ContactName
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address
	customer.TaxCode = req.TaxCode
	if !req.CreditLimit.IsZero() {
		if req.CreditLimit.IsNegative() {
			return nil, apperr.Validationf("credit_limit must not be negative")
		}
		customer.CreditLimit = req.CreditLimit
	}
	customer.PaymentTerms = req.PaymentTerms
	customer.Notes = req.Notes

	if err := s.repo.SaveCustomer(customer); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Duplicatef("customer with tax code %s already exists", req.TaxCode)
		}
		return nil, apperr.Internalf(err, "save customer")
	}
	s.activityRepo.Log("customer", customer.ID, customer.CustomerCode, entity.ActionUpdate, "", "", "customer updated", actorID)
	return customer, nil
}

func (s *PartnerService) DeleteCustomer(id, actorID string) error {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCustomer(id); err != nil {
		return apperr.Internalf(err, "delete customer")
	}
	s.activityRepo.Log("customer", customer.ID, customer.CustomerCode, entity.ActionDelete, "", "", "customer deleted", actorID)
	return nil
}

func (s *PartnerService) ListCustomers(params repository.CustomerListParams) ([]entity.Customer, int64, error) {
	return s.repo.ListCustomers(params)
}
