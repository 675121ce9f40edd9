package model

import "time"

// room = delivered to a hostel room, pickup = collected at the counter
type OrderMode string

const (
	OrderModeRoom   OrderMode = "room"
	OrderModePickup OrderMode = "pickup"
)

func (m OrderMode) Valid() bool {
	return m == OrderModeRoom || m == OrderModePickup
}

// COD = cash on room delivery, OC = cash on counter (pickup), Online = gateway payment
type PaymentType string

const (
	PaymentTypeCOD    PaymentType = "COD"
	PaymentTypeOC     PaymentType = "OC"
	PaymentTypeOnline PaymentType = "Online"
)

// adapter that initiated the order
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodStripe   PaymentMethod = "stripe"
)

type Order struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"_id" bson:"_id"`
	UserID        string          `gorm:"type:varchar(64);not null;index" json:"userId" bson:"user_id"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items" bson:"items"`
	Amount        int64           `gorm:"not null" json:"amount" bson:"amount"`
	Address       DeliveryAddress `gorm:"embedded;embeddedPrefix:address_" json:"address,omitzero" bson:"address,omitempty"`
	OrderMode     OrderMode       `gorm:"type:varchar(10);not null" json:"orderMode" bson:"order_mode"`
	PaymentType   PaymentType     `gorm:"type:varchar(10);not null" json:"paymentType" bson:"payment_type"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null" json:"paymentMethod" bson:"payment_method"`
	IsPaid        bool            `gorm:"not null;default:false" json:"isPaid" bson:"is_paid"`
	Status        OrderStatus     `gorm:"type:varchar(30);not null;index" json:"status" bson:"status"`
	Version       int64           `gorm:"not null;default:1" json:"-" bson:"version"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updatedAt" bson:"updated_at"`
}

// Line item. Name and unit price are snapshots taken when the order is placed.
type OrderItem struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement" json:"-" bson:"-"`
	OrderID             string `gorm:"type:varchar(36);not null;index" json:"-" bson:"-"`
	ProductID           string `gorm:"type:varchar(64);not null" json:"product" bson:"product_id"`
	ProductNameSnapshot string `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	UnitPriceSnapshot   int64  `gorm:"not null" json:"price" bson:"unit_price"`
	Quantity            int64  `gorm:"not null" json:"quantity" bson:"quantity"`
}

// online orders are owned by their adapter's confirmation path
func (o Order) IsOnline() bool {
	return o.PaymentType == PaymentTypeOnline
}
