package model

import "time"

type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"-" bson:"-"`
	CartID    int64     `gorm:"not null;index" json:"-" bson:"-"`
	ProductID string    `gorm:"type:varchar(64);not null;index" json:"product" bson:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity" bson:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"-" bson:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-" bson:"-"`
}
