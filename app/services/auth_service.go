package services

import (
	"errors"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/auth"
	"github.com/shashiranjanraj/allthebeans/pkg/logger"
)

// AuthService owns registration, login and profile lookups.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a customer account and returns a signed token for it.
// Registration never grants the admin role; admins are seeded or promoted
// out of band.
func (s *AuthService) Register(name, email, password string) (string, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return "", apperr.InvalidArgumentf("email %s is already registered", email)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := models.User{Name: name, Email: email, Password: hash, Role: models.RoleCustomer}
	if err := s.users.Create(&user); err != nil {
		return "", err
	}

	logger.Info("auth: user registered", "user_id", user.ID, "email", email)
	return auth.GenerateToken(user.ID, user.Role)
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrUnauthorized
		}
		return "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", apperr.ErrUnauthorized
	}

	return auth.GenerateToken(user.ID, user.Role)
}

// Profile returns the user for an authenticated id.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}
