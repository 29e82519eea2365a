package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	payment, err := h.svc.RecordPayment(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, payment)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.svc.GetPayment(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, payment)
}

func (h *PaymentHandler) List(c *gin.Context) {
	page, size := pagination(c)
	payments, total, err := h.svc.ListPayments(c.Query("direction"), c.Query("method"), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(payments, total, page, size))
}

func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	payments, err := h.svc.ListPaymentsByOrder(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, payments)
}

func (h *PaymentHandler) RefundOrder(c *gin.Context) {
	order, err := h.svc.RefundOrder(c.Param("id"), actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}
