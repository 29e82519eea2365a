package entity

import "time"

// Activity actions
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionDelete       = "delete"
	ActionStatusChange = "status_change"
	ActionPayment      = "payment"
	ActionStockMove    = "stock_movement"
)

// ActivityLog is one audit trail entry. EntityType/EntityID loosely
// reference whatever record the action touched.
type ActivityLog struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	EntityType string    `json:"entity_type" gorm:"size:50;not null;index:idx_activity_entity"`
	EntityID   string    `json:"entity_id" gorm:"size:64;not null;index:idx_activity_entity"`
	EntityCode string    `json:"entity_code" gorm:"size:50"`
	Action     string    `json:"action" gorm:"size:50;not null"`
	FromStatus string    `json:"from_status" gorm:"size:20"`
	ToStatus   string    `json:"to_status" gorm:"size:20"`
	Content    string    `json:"content" gorm:"type:text"`
	ActorID    string    `json:"actor_id" gorm:"size:64"`
	IPAddress  string    `json:"ip_address" gorm:"size:45"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
