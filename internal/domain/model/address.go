package model

import "strings"

// DeliveryAddress is where a room order goes. It is stored inline on the order.
type DeliveryAddress struct {
	//recipient
	Name string `gorm:"type:varchar(255)" json:"name" bson:"name"`

	Phone string `gorm:"type:varchar(30)" json:"phone" bson:"phone"`

	//hostel room number
	Room string `gorm:"type:varchar(50)" json:"room" bson:"room"`
}

// Complete reports whether every field a room delivery needs is filled in.
func (a DeliveryAddress) Complete() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Phone) != "" &&
		strings.TrimSpace(a.Room) != ""
}

func (a DeliveryAddress) IsZero() bool {
	return a == DeliveryAddress{}
}

func (a DeliveryAddress) Trimmed() DeliveryAddress {
	return DeliveryAddress{
		Name:  strings.TrimSpace(a.Name),
		Phone: strings.TrimSpace(a.Phone),
		Room:  strings.TrimSpace(a.Room),
	}
}
