package model

import "time"

// seller and payment actions worth keeping a trail of
type AuditAction string

const (
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	AuditActionMarkPaid          AuditAction = "MARK_PAID"
	AuditActionPaymentConfirmed  AuditAction = "PAYMENT_CONFIRMED"
	AuditActionOrderDeleted      AuditAction = "ORDER_DELETED"
)

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// Actor ids are user ids, the seller email, or "gateway:<name>" for webhook driven changes.
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id" bson:"-"`

	ActorID string `gorm:"type:varchar(255);not null;index" json:"actorId" bson:"actor_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action" bson:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType" bson:"resource_type"`

	ResourceID string `gorm:"type:varchar(64);not null;index" json:"resourceId" bson:"resource_id"`

	//JSON snapshots
	BeforeJSON string `gorm:"type:text" json:"before" bson:"before"`
	AfterJSON  string `gorm:"type:text" json:"after" bson:"after"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt" bson:"created_at"`
}
