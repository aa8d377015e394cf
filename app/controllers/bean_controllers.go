package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/allthebeans/app/models"
	"github.com/shashiranjanraj/allthebeans/app/services"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/bind"
	"github.com/shashiranjanraj/allthebeans/pkg/response"
	"github.com/shashiranjanraj/allthebeans/pkg/validate"
)

// beanInput is the request body for creating or updating a bean.
// The id and display index are server-assigned and never accepted here.
type beanInput struct {
	Cost        float64 `json:"cost" validate:"gte=0"`
	Image       string  `json:"image" validate:"nullable,url"`
	Colour      string  `json:"colour" validate:"nullable,max=100"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable"`
	Country     string  `json:"country" validate:"required,max=100"`
}

func (in beanInput) toModel() models.Bean {
	return models.Bean{
		// Costs are quoted to the penny; round here so stored and
		// rendered values agree.
		Cost:        math.Round(in.Cost*100) / 100,
		Image:       in.Image,
		Colour:      in.Colour,
		Name:        in.Name,
		Description: in.Description,
		Country:     in.Country,
	}
}

type BeanController struct {
	beans *services.BeanService
	botd  *services.BOTDService
}

func NewBeanController(beans *services.BeanService, botd *services.BOTDService) *BeanController {
	return &BeanController{beans: beans, botd: botd}
}

// Index handles GET /api/beans.
func (c *BeanController) Index(w http.ResponseWriter, r *http.Request) {
	beans, err := c.beans.List()
	if err != nil {
		response.FromError(w, err, "Could not load beans")
		return
	}
	response.JSON(w, beans)
}

// Show handles GET /api/beans/{id}.
func (c *BeanController) Show(w http.ResponseWriter, r *http.Request) {
	bean, err := c.beans.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFound(w, "Bean not found")
			return
		}
		response.FromError(w, err, "Could not load bean")
		return
	}
	response.JSON(w, bean)
}

// Search handles GET /api/beans/search?q=term.
func (c *BeanController) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	beans, err := c.beans.Search(q)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			response.Error(w, http.StatusBadRequest, `Search query parameter "q" is required`)
			return
		}
		response.FromError(w, err, "Could not search beans")
		return
	}
	response.JSON(w, beans)
}

// Store handles POST /api/beans.
func (c *BeanController) Store(w http.ResponseWriter, r *http.Request) {
	var in beanInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	bean, err := c.beans.Create(in.toModel())
	if err != nil {
		response.FromError(w, err, "Could not create bean")
		return
	}
	response.Created(w, bean)
}

// Update handles PUT /api/beans/{id}.
func (c *BeanController) Update(w http.ResponseWriter, r *http.Request) {
	var in beanInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	bean, err := c.beans.Update(chi.URLParam(r, "id"), in.toModel())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFound(w, "Bean not found")
			return
		}
		response.FromError(w, err, "Could not update bean")
		return
	}
	response.JSON(w, bean)
}

// Destroy handles DELETE /api/beans/{id}.
func (c *BeanController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.beans.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFound(w, "Bean not found")
			return
		}
		response.FromError(w, err, "Could not delete bean")
		return
	}
	response.JSON(w, map[string]string{"message": "Bean deleted"})
}

// BOTD handles GET /api/beans/botd — returns today's bean, selecting one on
// the first read of the day.
func (c *BeanController) BOTD(w http.ResponseWriter, r *http.Request) {
	bean, err := c.botd.Today()
	if err != nil {
		if errors.Is(err, apperr.ErrNoBeansAvailable) {
			response.FromError(w, err, "No beans available")
			return
		}
		response.FromError(w, err, "Could not determine bean of the day")
		return
	}
	response.JSON(w, bean)
}

// SetBOTD handles PUT /api/beans/botd — admin override of today's selection.
func (c *BeanController) SetBOTD(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID string `json:"id" validate:"required,uuid"`
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

	bean, err := c.botd.Set(in.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			response.NotFound(w, "Bean not found")
			return
		}
		response.FromError(w, err, "Could not set bean of the day")
		return
	}
	response.JSON(w, bean)
}
