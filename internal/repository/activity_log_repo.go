package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshport/freshport/internal/entity"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Create(log *entity.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	return r.db.Create(log).Error
}

type ActivityListParams struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    string
	Page       int
	Size       int
}

func (r *ActivityLogRepository) List(params ActivityListParams) ([]entity.ActivityLog, int64, error) {
	query := r.db.Model(&entity.ActivityLog{})
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.EntityID != "" {
		query = query.Where("entity_id = ?", params.EntityID)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	if params.ActorID != "" {
		query = query.Where("actor_id = ?", params.ActorID)
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
	var logs []entity.ActivityLog
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&logs).Error
	return logs, total, err
}

// Log is a fire-and-forget convenience used by services; audit writes
// never fail a business operation.
func (r *ActivityLogRepository) Log(entityType, entityID, entityCode, action, fromStatus, toStatus, content, actorID string) {
	log := &entity.ActivityLog{
		ID:         uuid.New().String(),
		EntityType: entityType,
		EntityID:   entityID,
		EntityCode: entityCode,
		Action:     action,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Content:    content,
		ActorID:    actorID,
	}
	r.db.Create(log)
}
