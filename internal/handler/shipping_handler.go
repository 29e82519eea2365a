package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/service"
)

type ShippingHandler struct {
	svc *service.ShippingService
}

func NewShippingHandler(svc *service.ShippingService) *ShippingHandler {
	return &ShippingHandler{svc: svc}
}

func (h *ShippingHandler) CreateDeclaration(c *gin.Context) {
	var req service.DeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	declaration, err := h.svc.CreateDeclaration(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, declaration)
}

func (h *ShippingHandler) GetDeclaration(c *gin.Context) {
	declaration, err := h.svc.GetDeclaration(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, declaration)
}

func (h *ShippingHandler) UpdateDeclaration(c *gin.Context) {
	var req service.DeclarationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	declaration, err := h.svc.UpdateDeclaration(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, declaration)
}

func (h *ShippingHandler) ChangeDeclarationStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	declaration, err := h.svc.ChangeDeclarationStatus(c.Param("id"), req.Status, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, declaration)
}

func (h *ShippingHandler) ListDeclarations(c *gin.Context) {
	page, size := pagination(c)
	declarations, total, err := h.svc.ListDeclarations(c.Query("order_id"), c.Query("status"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(declarations, total, page, size))
}

func (h *ShippingHandler) AddDocument(c *gin.Context) {
	var req service.ShippingDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	document, err := h.svc.AddDocument(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, document)
}

func (h *ShippingHandler) ListDocumentsByOrder(c *gin.Context) {
	documents, err := h.svc.ListDocumentsByOrder(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, documents)
}
