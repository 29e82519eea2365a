package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshport/freshport/internal/apperr"
	"github.com/freshport/freshport/internal/entity"
	"github.com/freshport/freshport/internal/repository"
)

// ShippingService handles customs declarations and the transport
// papers attached to orders.
type ShippingService struct {
	repo         *repository.ShippingRepository
	orderRepo    *repository.OrderRepository
	activityRepo *repository.ActivityLogRepository
}

func NewShippingService(
	repo *repository.ShippingRepository,
	orderRepo *repository.OrderRepository,
	activityRepo *repository.ActivityLogRepository,
) *ShippingService {
	return &ShippingService{repo: repo, orderRepo: orderRepo, activityRepo: activityRepo}
}

func (s *ShippingService) loadOrder(orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("order %s not found", orderID)
		}
		return nil, apperr.Internalf(err, "load order")
	}
	return order, nil
}

type DeclarationRequest struct {
	OrderID       string          `json:"order_id" binding:"required"`
	CustomsOffice string          `json:"customs_office"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
	CustomsDuty   decimal.Decimal `json:"customs_duty"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	OtherFees     decimal.Decimal `json:"other_fees"`
	Notes         string          `json:"notes"`
}

func (s *ShippingService) CreateDeclaration(req DeclarationRequest, actorID string) (*entity.CustomsDeclaration, error) {
	if req.DeclaredValue.IsNegative() || req.CustomsDuty.IsNegative() ||
		req.VATAmount.IsNegative() || req.OtherFees.IsNegative() {
		return nil, apperr.Validationf("declaration amounts must not be negative")
	}
	order, err := s.loadOrder(req.OrderID)
	if err != nil {
		return nil, err
	}

	declaration := &entity.CustomsDeclaration{
		ID:            uuid.New().String(),
		OrderID:       order.ID,
		Status:        entity.DeclarationDraft,
		CustomsOffice: req.CustomsOffice,
		DeclaredValue: req.DeclaredValue,
		CustomsDuty:   req.CustomsDuty,
		VATAmount:     req.VATAmount,
		OtherFees:     req.OtherFees,
		Notes:         req.Notes,
		CreatedBy:     actorID,
	}
	declaration.ComputeTotalTax()

	last, err := s.repo.LastDeclarationNumber()
	if err != nil {
		return nil, apperr.Internalf(err, "scan declaration numbers")
	}
	declaration.DeclarationNumber = nextCode("TK", last)
	if err := s.repo.CreateDeclaration(declaration); err != nil {
		if !isDuplicate(err) {
			return nil, apperr.Internalf(err, "create declaration")
		}
		declaration.DeclarationNumber = fallbackCode("TK")
		if err := s.repo.CreateDeclaration(declaration); err != nil {
			return nil, apperr.Internalf(err, "create declaration")
		}
	}

	s.activityRepo.Log("customs_declaration", declaration.ID, declaration.DeclarationNumber,
		entity.ActionCreate, "", entity.DeclarationDraft, "customs declaration created", actorID)
	return declaration, nil
}

type DeclarationUpdateRequest struct {
	CustomsOffice string           `json:"customs_office"`
	DeclaredValue *decimal.Decimal `json:"declared_value"`
	CustomsDuty   *decimal.Decimal `json:"customs_duty"`
	VATAmount     *decimal.Decimal `json:"vat_amount"`
	OtherFees     *decimal.Decimal `json:"other_fees"`
	Notes         string           `json:"notes"`
}

// UpdateDeclaration edits the amounts on a draft declaration and
// recomputes the derived tax total. Submitted paperwork is immutable.
func (s *ShippingService) UpdateDeclaration(id string, req DeclarationUpdateRequest, actorID string) (*entity.CustomsDeclaration, error) {
	declaration, err := s.GetDeclaration(id)
	if err != nil {
		return nil, err
	}
	if declaration.Status != entity.DeclarationDraft {
		return nil, apperr.InvalidTransitionf("declaration %s is %s and can no longer be edited",
			declaration.DeclarationNumber, declaration.Status)
	}
	if req.CustomsOffice != "" {
		declaration.CustomsOffice = req.CustomsOffice
	}
	for _, field := range []struct {
		value *decimal.Decimal
		dst   *decimal.Decimal
		name  string
	}{
		{req.DeclaredValue, &declaration.DeclaredValue, "declared_value"},
		{req.CustomsDuty, &declaration.CustomsDuty, "customs_duty"},
		{req.VATAmount, &declaration.VATAmount, "vat_amount"},
		{req.OtherFees, &declaration.OtherFees, "other_fees"},
	} {
		if field.value == nil {
			continue
		}
		if field.value.IsNegative() {
			return nil, apperr.Validationf("%s must not be negative", field.name)
		}
		*field.dst = *field.value
	}
	if req.Notes != "" {
		declaration.Notes = req.Notes
	}
	declaration.ComputeTotalTax()
	declaration.Order = nil

	if err := s.repo.SaveDeclaration(declaration); err != nil {
		return nil, apperr.Internalf(err, "save declaration")
	}
	s.activityRepo.Log("customs_declaration", declaration.ID, declaration.DeclarationNumber,
		entity.ActionUpdate, "", "", "customs declaration updated", actorID)
	return declaration, nil
}

// declarationTransitions: draft -> submitted -> cleared | rejected.
var declarationTransitions = map[string][]string{
	entity.DeclarationDraft:     {entity.DeclarationSubmitted},
	entity.DeclarationSubmitted: {entity.DeclarationCleared, entity.DeclarationRejected},
}

func (s *ShippingService) ChangeDeclarationStatus(id, status, actorID string) (*entity.CustomsDeclaration, error) {
	declaration, err := s.GetDeclaration(id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, next := range declarationTransitions[declaration.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.InvalidTransitionf("cannot move declaration %s from %s to %s",
			declaration.DeclarationNumber, declaration.Status, status)
	}

	from := declaration.Status
	now := time.Now()
	declaration.Status = status
	switch status {
	case entity.DeclarationSubmitted:
		declaration.DeclaredAt = &now
	case entity.DeclarationCleared:
		declaration.ClearedAt = &now
	}
	declaration.Order = nil

	if err := s.repo.SaveDeclaration(declaration); err != nil {
		return nil, apperr.Internalf(err, "save declaration")
	}
	s.activityRepo.Log("customs_declaration", declaration.ID, declaration.DeclarationNumber,
		entity.ActionStatusChange, from, status, "", actorID)
	return declaration, nil
}

func (s *ShippingService) GetDeclaration(id string) (*entity.CustomsDeclaration, error) {
	declaration, err := s.repo.GetDeclarationByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFoundf("declaration %s not found", id)
		}
		return nil, apperr.Internalf(err, "load declaration")
	}
	return declaration, nil
}

func (s *ShippingService) ListDeclarations(orderID, status string, page, size int) ([]entity.CustomsDeclaration, int64, error) {
	return s.repo.ListDeclarations(orderID, status, page, size)
}

type ShippingDocumentRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required"`
	IssuedBy       string `json:"issued_by"`
	IssuedAt       string `json:"issued_at"`  // 2006-01-02
	ExpiresAt      string `json:"expires_at"` // 2006-01-02
	Notes          string `json:"notes"`
}

func (s *ShippingService) AddDocument(req ShippingDocumentRequest, actorID string) (*entity.ShippingDocument, error) {
	switch req.DocumentType {
	case entity.ShipDocBillOfLading, entity.ShipDocPackingList, entity.ShipDocCertOrigin,
		entity.ShipDocPhytosanitary, entity.ShipDocInvoice:
	default:
		return nil, apperr.Validationf("unknown document_type %q", req.DocumentType)
	}
	order, err := s.loadOrder(req.OrderID)
	if err != nil {
		return nil, err
	}

	document := &entity.ShippingDocument{
		ID:             uuid.New().String(),
		OrderID:        order.ID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		IssuedBy:       req.IssuedBy,
		Notes:          req.Notes,
		CreatedBy:      actorID,
	}
	if req.IssuedAt != "" {
		d, err := time.Parse("2006-01-02", req.IssuedAt)
		if err != nil {
			return nil, apperr.Validationf("issued_at must be YYYY-MM-DD")
		}
		document.IssuedAt = &d
	}
	if req.ExpiresAt != "" {
		d, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return nil, apperr.Validationf("expires_at must be YYYY-MM-DD")
		}
		document.ExpiresAt = &d
	}

	if err := s.repo.CreateDocument(document); err != nil {
		return nil, apperr.Internalf(err, "create shipping document")
	}
	s.activityRepo.Log("shipping_document", document.ID, document.DocumentNumber,
		entity.ActionCreate, "", "", "shipping document attached to "+order.OrderNumber, actorID)
	return document, nil
}

func (s *ShippingService) ListDocumentsByOrder(orderID string) ([]entity.ShippingDocument, error) {
	if _, err := s.loadOrder(orderID); err != nil {
		return nil, err
	}
	return s.repo.ListDocumentsByOrder(orderID)
}
