package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Auth0ID     string `gorm:"uniqueIndex;not null" json:"auth0Id"`
	Email       string `gorm:"not null" json:"email"`
	Name        string `json:"name"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Country     string `json:"country"`
}
