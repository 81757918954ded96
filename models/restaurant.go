package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	UserID                uint           `gorm:"uniqueIndex;not null" json:"userId"`
	User                  User           `gorm:"foreignKey:UserID" json:"-"`
	RestaurantName        string         `gorm:"not null" json:"restaurantName"`
	City                  string         `json:"city"`
	Country               string         `json:"country"`
	DeliveryPrice         float64        `json:"deliveryPrice"`
	EstimatedDeliveryTime int            `json:"estimatedDeliveryTime"`
	Cuisines              pq.StringArray `gorm:"type:text[]" json:"cuisines"`
	MenuItems             []MenuItem     `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"menuItems"`
	ImageURL              string         `json:"imageUrl"`
	LastUpdated           time.Time      `json:"lastUpdated"`
}

type MenuItem struct {
	gorm.Model
	RestaurantID uint    `gorm:"index" json:"restaurantId"`
	Name         string  `gorm:"not null" json:"name"`
	Price        float64 `gorm:"not null" json:"price"`
}
