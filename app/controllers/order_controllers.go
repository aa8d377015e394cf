package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/bind"
	"github.com/shashiranjanraj/allthebeans/pkg/response"
	"github.com/shashiranjanraj/allthebeans/pkg/validate"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Store handles POST /api/orders. Orders are acknowledged immediately and
// processed in the background; nothing is persisted.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.OrderRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	orderID, total, err := c.service.Place(in)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			response.NotFound(w, "Bean not found")
		case errors.Is(err, apperr.ErrInvalidArgument):
			response.Error(w, http.StatusBadRequest, err.Error())
		default:
			response.FromError(w, err, "Could not place order")
		}
		return
	}

	response.Created(w, map[string]interface{}{
		"message": "Thank you for your order",
		"orderId": orderID,
		"total":   total,
	})
}
