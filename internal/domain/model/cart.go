package model

import "time"

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

// one ACTIVE cart per user
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id" bson:"-"`
	UserID    string     `gorm:"type:varchar(64);not null;index" json:"userId" bson:"user_id"`
	Status    CartStatus `gorm:"type:varchar(20);not null;index" json:"status" bson:"status"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items" bson:"items"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt" bson:"updated_at"`
}
