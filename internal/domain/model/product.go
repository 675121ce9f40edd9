package model

import "time"

// Canteen catalog entry. Prices are whole rupees.
type Product struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"_id" bson:"_id" yaml:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" bson:"name" yaml:"name"`
	Category  string    `gorm:"type:varchar(100);index" json:"category" bson:"category" yaml:"category"`
	Price     int64     `gorm:"not null" json:"price" bson:"price" yaml:"price"`
	InStock   bool      `gorm:"not null;default:true" json:"inStock" bson:"in_stock" yaml:"inStock"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt" bson:"created_at" yaml:"-"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt" bson:"updated_at" yaml:"-"`
}
