package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/freshport/freshport/internal/repository"
	"github.com/freshport/freshport/internal/service"
)

type DashboardHandler struct {
	svc      *service.DashboardService
	activity *service.ActivityService
}

func NewDashboardHandler(svc *service.DashboardService, activity *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{svc: svc, activity: activity}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, summary)
}

func (h *DashboardHandler) ListActivity(c *gin.Context) {
	page, size := pagination(c)
	params := repository.ActivityListParams{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Action:     c.Query("action"),
		ActorID:    c.Query("actor_id"),
		Page:       page,
		Size:       size,
	}
	logs, total, err := h.activity.List(params)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, paginated(logs, total, page, size))
}
