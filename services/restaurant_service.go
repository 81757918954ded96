package services

import (
	"context"
	"errors"
	"time"

	"github.com/boredom1234/yummenu-backend/config"
	"github.com/boredom1234/yummenu-backend/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrRestaurantExists   = errors.New("user restaurant already exists")
)

func FindRestaurantByOwner(ctx context.Context, userID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := config.DB.WithContext(ctx).
		Preload("MenuItems").
		First(&restaurant, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

// CreateRestaurant persists a new restaurant for the owner. The unique index
// on user_id backs up the existence check, so a lost create/create race
// surfaces as a constraint violation instead of a duplicate row.
func CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	var existing models.Restaurant
	err := config.DB.WithContext(ctx).First(&existing, "user_id = ?", restaurant.UserID).Error
	if err == nil {
		return ErrRestaurantExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	restaurant.LastUpdated = time.Now()
	if err := config.DB.WithContext(ctx).Create(restaurant).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrRestaurantExists
		}
		return err
	}
	return nil
}

// RestaurantUpdate carries the full replacement state for an update; every
// field overwrites the stored value, the image URL only when non-empty.
type RestaurantUpdate struct {
	RestaurantName        string
	City                  string
	Country               string
	DeliveryPrice         float64
	EstimatedDeliveryTime int
	Cuisines              []string
	MenuItems             []models.MenuItem
	ImageURL              string
}

func UpdateRestaurant(ctx context.Context, userID uint, upd RestaurantUpdate) (*models.Restaurant, error) {
	restaurant, err := FindRestaurantByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurant.RestaurantName = upd.RestaurantName
	restaurant.City = upd.City
	restaurant.Country = upd.Country
	restaurant.DeliveryPrice = upd.DeliveryPrice
	restaurant.EstimatedDeliveryTime = upd.EstimatedDeliveryTime
	restaurant.Cuisines = pq.StringArray(upd.Cuisines)
	restaurant.LastUpdated = time.Now()
	if upd.ImageURL != "" {
		restaurant.ImageURL = upd.ImageURL
	}

	// Menu replacement is wholesale: drop the old rows, attach the new set.
	err = config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		restaurant.MenuItems = upd.MenuItems
		return tx.Save(restaurant).Error
	})
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}
