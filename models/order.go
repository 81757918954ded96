package models

import "gorm.io/gorm"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"         // order placed, awaiting payment confirmation
	OrderStatusPaid           OrderStatus = "paid"           // payment confirmed
	OrderStatusInProgress     OrderStatus = "inProgress"     // kitchen is preparing the order
	OrderStatusOutForDelivery OrderStatus = "outForDelivery" // courier on the way
	OrderStatusDelivered      OrderStatus = "delivered"      // customer received the order
)

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPlaced, OrderStatusPaid, OrderStatusInProgress,
		OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

// DeliveryDetails is captured at checkout time; orders are created by the
// checkout flow, this backend only reads them and moves their status.
type DeliveryDetails struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
}

type Order struct {
	gorm.Model
	RestaurantID    uint            `gorm:"index;not null" json:"restaurantId"`
	Restaurant      Restaurant      `gorm:"foreignKey:RestaurantID" json:"restaurant"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	DeliveryDetails DeliveryDetails `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryDetails"`
	CartItems       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cartItems"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'placed'" json:"status"`
}

type OrderItem struct {
	gorm.Model
	OrderID    uint   `gorm:"index" json:"orderId"`
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}
