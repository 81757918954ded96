package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/boredom1234/yummenu-backend/models"
	"github.com/boredom1234/yummenu-backend/services"

	"github.com/gin-gonic/gin"
)

type CreateUserInput struct {
	Auth0ID     string `json:"auth0Id" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Name        string `json:"name"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type UpdateUserInput struct {
	Name        string `json:"name"`
	AddressLine string `json:"addressLine"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("userID")

	user, err := services.FindUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Error fetching user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong while fetching user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateCurrentUser is the first-sign-in callback. Creating the same external
// identity twice is a no-op, not an error.
func CreateCurrentUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	_, err := services.FindUserByAuth0ID(c.Request.Context(), input.Auth0ID)
	if err == nil {
		c.Status(http.StatusOK)
		return
	}
	if !errors.Is(err, services.ErrUserNotFound) {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	user := models.User{
		Auth0ID:     input.Auth0ID,
		Email:       input.Email,
		Name:        input.Name,
		AddressLine: input.AddressLine,
		City:        input.City,
		Country:     input.Country,
	}
	if err := services.CreateUser(c.Request.Context(), &user); err != nil {
		// A concurrent first-sign-in callback won the race; same no-op outcome
		// as the existence check.
		if errors.Is(err, services.ErrUserExists) {
			c.Status(http.StatusOK)
			return
		}
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func UpdateCurrentUser(c *gin.Context) {
	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	userID := c.GetUint("userID")

	user, err := services.UpdateUserProfile(c.Request.Context(), userID,
		input.Name, input.AddressLine, input.City, input.Country)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Error updating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
