package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/auth"
	"github.com/shashiranjanraj/allthebeans/pkg/bind"
	"github.com/shashiranjanraj/allthebeans/pkg/middleware"
	"github.com/shashiranjanraj/allthebeans/pkg/response"
	"github.com/shashiranjanraj/allthebeans/pkg/validate"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /api/auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name" validate:"required,max=255"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Register(in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			response.Error(w, http.StatusBadRequest, "Email is already registered")
			return
		}
		response.FromError(w, err, "Could not register")
		return
	}
	response.Created(w, map[string]string{"token": token})
}

// Login handles POST /api/auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.FromError(w, err, "Could not log in")
		return
	}
	response.JSON(w, map[string]string{"token": token})
}

// Token handles POST /api/auth/token — a development convenience that mints
// a token without credentials. Refused outright in production.
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	if config.IsProduction() {
		response.Forbidden(w, "Token endpoint is disabled in production")
		return
	}

	var in struct {
		Role string `json:"role" validate:"nullable,in=customer,admin"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil && !errors.Is(err, io.EOF) { // empty body is fine here
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}
	if in.Role == "" {
		in.Role = models.RoleAdmin
	}

	token, err := auth.GenerateTokenFor(0, in.Role, 24*time.Hour)
	if err != nil {
		response.FromError(w, err, "Could not issue token")
		return
	}
	response.JSON(w, map[string]string{"token": token})
}

// Profile handles GET /api/auth/profile.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w, "Access token required")
		return
	}

	user, err := c.service.Profile(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.FromError(w, err, "Could not load profile")
		return
	}
	response.JSON(w, user)
}
