package services

import (
	"context"
	"errors"

	"github.com/boredom1234/yummenu-backend/config"
	"github.com/boredom1234/yummenu-backend/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// ListOrdersForRestaurant returns every order placed against the restaurant,
// with the restaurant and placing user expanded rather than bare ids.
func ListOrdersForRestaurant(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := config.DB.WithContext(ctx).
		Preload("Restaurant").
		Preload("User").
		Preload("CartItems").
		Where("restaurant_id = ?", restaurantID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new lifecycle state. The order must
// belong to the given restaurant; one outside that scope reads as not found.
func UpdateOrderStatus(ctx context.Context, orderID, restaurantID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := config.DB.WithContext(ctx).
		First(&order, "id = ? AND restaurant_id = ?", orderID, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := config.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}

	err = config.DB.WithContext(ctx).
		Preload("Restaurant").
		Preload("User").
		Preload("CartItems").
		First(&order, order.ID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
