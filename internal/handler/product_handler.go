package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	product, err := h.svc.CreateProduct(req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	product, err := h.svc.UpdateProduct(c.Param("id"), req, actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Param("id"), actor(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": true})
}

func (h *ProductHandler) List(c *gin.Context) {
	page, size := pagination(c)
	params := repository.ProductListParams{
		CategoryID:   c.Query("category_id"),
		Origin:       c.Query("origin"),
		QualityGrade: c.Query("quality_grade"),
		ActiveOnly:   c.Query("active") == "true",
		Keyword:      c.Query("keyword"),
		Page:         page,
		Size:         size,
	}
	products, total, err := h.svc.ListProducts(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(products, total, page, size))
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req service.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	category, err := h.svc.CreateCategory(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, category)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, categories)
}

func (h *ProductHandler) CreateUnit(c *gin.Context) {
	var req service.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBind(c, err)
		return
	}
	unit, err := h.svc.CreateUnit(req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, unit)
}

func (h *ProductHandler) ListUnits(c *gin.Context) {
	units, err := h.svc.ListUnits()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, units)
}
