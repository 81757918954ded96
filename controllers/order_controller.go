package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/boredom1234/yummenu-backend/models"
	"github.com/boredom1234/yummenu-backend/services"
	"github.com/boredom1234/yummenu-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func GetMyRestaurantOrders(c *gin.Context) {
	userID := c.GetUint("userID")

	restaurant, err := services.FindRestaurantByOwner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "restaurant not found"})
			return
		}
		log.Printf("Error fetching restaurant orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		return
	}

	orders, err := services.ListOrdersForRestaurant(c.Request.Context(), restaurant.ID)
	if err != nil {
		log.Printf("Error fetching restaurant orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "something went wrong"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus moves an order through its lifecycle. Only the owner of
// the restaurant the order was placed against may move it; anyone else sees
// the order as not found.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order id"})
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	userID := c.GetUint("userID")

	restaurant, err := services.FindRestaurantByOwner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		log.Printf("Error updating order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating order status"})
		return
	}

	order, err := services.UpdateOrderStatus(c.Request.Context(), uint(orderID), restaurant.ID, models.OrderStatus(input.Status))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		log.Printf("Error updating order status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating order status"})
		return
	}

	// Best effort: the status change stands even if the email does not go out.
	if order.DeliveryDetails.Email != "" {
		if err := utils.SendOrderStatusEmail(c.Request.Context(), order.DeliveryDetails.Email,
			order.Restaurant.RestaurantName, string(order.Status)); err != nil {
			log.Printf("Order status email failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, order)
}
