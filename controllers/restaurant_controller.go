package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/boredom1234/yummenu-backend/models"
	"github.com/boredom1234/yummenu-backend/services"
	"github.com/boredom1234/yummenu-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// uploadImage is a package variable so tests can stand in for the media store.
var uploadImage = utils.UploadImageFile

type MenuItemInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// restaurantForm holds the multipart fields of a create/update request.
// cuisines and menuItems arrive as JSON-encoded form values.
type restaurantForm struct {
	RestaurantName        string
	City                  string
	Country               string
	DeliveryPrice         float64
	EstimatedDeliveryTime int
	Cuisines              []string
	MenuItems             []models.MenuItem
}

func parseRestaurantForm(c *gin.Context) (*restaurantForm, error) {
	form := &restaurantForm{
		RestaurantName: c.PostForm("restaurantName"),
		City:           c.PostForm("city"),
		Country:        c.PostForm("country"),
	}
	if form.RestaurantName == "" {
		return nil, errors.New("restaurantName is required")
	}

	var err error
	form.DeliveryPrice, err = strconv.ParseFloat(c.PostForm("deliveryPrice"), 64)
	if err != nil {
		return nil, errors.New("invalid deliveryPrice")
	}
	form.EstimatedDeliveryTime, err = strconv.Atoi(c.PostForm("estimatedDeliveryTime"))
	if err != nil {
		return nil, errors.New("invalid estimatedDeliveryTime")
	}

	if raw := c.PostForm("cuisines"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.Cuisines); err != nil {
			return nil, errors.New("invalid cuisines")
		}
	}

	if raw := c.PostForm("menuItems"); raw != "" {
		var items []MenuItemInput
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, errors.New("invalid menuItems")
		}
		for _, it := range items {
			form.MenuItems = append(form.MenuItems, models.MenuItem{Name: it.Name, Price: it.Price})
		}
	}

	return form, nil
}

func GetMyRestaurant(c *gin.Context) {
	userID := c.GetUint("userID")

	restaurant, err := services.FindRestaurantByOwner(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		log.Printf("Error fetching restaurant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong while fetching restaurant"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

func CreateMyRestaurant(c *gin.Context) {
	userID := c.GetUint("userID")

	// Existence is checked before the upload so a duplicate request never
	// pushes an orphan image to the media store.
	if _, err := services.FindRestaurantByOwner(c.Request.Context(), userID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "User restaurant already exists"})
		return
	} else if !errors.Is(err, services.ErrRestaurantNotFound) {
		log.Printf("Error creating restaurant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating restaurant"})
		return
	}

	form, err := parseRestaurantForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	fh, err := c.FormFile("imageFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageFile is required"})
		return
	}

	imageURL, err := uploadImage(c.Request.Context(), fh, "restaurant")
	if err != nil {
		log.Printf("Error uploading restaurant image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating restaurant"})
		return
	}

	restaurant := models.Restaurant{
		UserID:                userID,
		RestaurantName:        form.RestaurantName,
		City:                  form.City,
		Country:               form.Country,
		DeliveryPrice:         form.DeliveryPrice,
		EstimatedDeliveryTime: form.EstimatedDeliveryTime,
		Cuisines:              pq.StringArray(form.Cuisines),
		MenuItems:             form.MenuItems,
		ImageURL:              imageURL,
	}
	if err := services.CreateRestaurant(c.Request.Context(), &restaurant); err != nil {
		if errors.Is(err, services.ErrRestaurantExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "User restaurant already exists"})
			return
		}
		log.Printf("Error creating restaurant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating restaurant"})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

func UpdateMyRestaurant(c *gin.Context) {
	userID := c.GetUint("userID")

	form, err := parseRestaurantForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	upd := services.RestaurantUpdate{
		RestaurantName:        form.RestaurantName,
		City:                  form.City,
		Country:               form.Country,
		DeliveryPrice:         form.DeliveryPrice,
		EstimatedDeliveryTime: form.EstimatedDeliveryTime,
		Cuisines:              form.Cuisines,
		MenuItems:             form.MenuItems,
	}

	// The stored image survives unless a new file is attached.
	if fh, err := c.FormFile("imageFile"); err == nil {
		imageURL, err := uploadImage(c.Request.Context(), fh, "restaurant")
		if err != nil {
			log.Printf("Error uploading restaurant image: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating restaurant"})
			return
		}
		upd.ImageURL = imageURL
	}

	restaurant, err := services.UpdateRestaurant(c.Request.Context(), userID, upd)
	if err != nil {
		if errors.Is(err, services.ErrRestaurantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
			return
		}
		log.Printf("Error updating restaurant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating restaurant"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}
