package services

import (
	"context"
	"errors"

	"github.com/boredom1234/yummenu-backend/config"
	"github.com/boredom1234/yummenu-backend/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func FindUserByAuth0ID(ctx context.Context, auth0ID string) (*models.User, error) {
	var user models.User
	if err := config.DB.WithContext(ctx).First(&user, "auth0_id = ?", auth0ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser persists a new user. The unique index on auth0_id backs up the
// handler's existence check; a lost create/create race comes back as
// ErrUserExists instead of a duplicate row.
func CreateUser(ctx context.Context, user *models.User) error {
	if err := config.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// UpdateUserProfile overwrites the optional profile fields wholesale. Fields
// omitted from the request become empty; there is no partial merge.
func UpdateUserProfile(ctx context.Context, id uint, name, addressLine, city, country string) (*models.User, error) {
	user, err := FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.AddressLine = addressLine
	user.City = city
	user.Country = country

	if err := config.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
