package controllers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/allthebeans/pkg/database"
)

// healthBody deliberately bypasses the error envelope; the health wire
// format is {status, message} in both outcomes.
type healthBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check handles GET /api/health.
func (c *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := database.Ping(c.db); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(healthBody{Status: "ERROR", Message: "Database unreachable"}) //nolint:errcheck
		return
	}
	json.NewEncoder(w).Encode(healthBody{Status: "OK", Message: "All the beans are ready"}) //nolint:errcheck
}
