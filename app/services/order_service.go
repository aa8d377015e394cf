package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/allthebeans/app/repositories"
	"github.com/shashiranjanraj/allthebeans/pkg/apperr"
	"github.com/shashiranjanraj/allthebeans/pkg/logger"
	"github.com/shashiranjanraj/allthebeans/pkg/queue"
	"github.com/shashiranjanraj/allthebeans/pkg/validate"
)

// OrderItem is one line of a checkout request.
type OrderItem struct {
	BeanID   string `json:"beanId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,integer,gte=1"`
}

// OrderRequest is the checkout payload. Orders are not persisted; they are
// validated, acknowledged, and handed to the background queue for logging.
type OrderRequest struct {
	Name    string      `json:"name" validate:"required,max=255"`
	Email   string      `json:"email" validate:"required,email"`
	Address string      `json:"address" validate:"required,max=512"`
	Items   []OrderItem `json:"items" validate:"required"`
}

// OrderReceivedJob logs an accepted order. Registered with the queue at boot.
type OrderReceivedJob struct {
	OrderID string      `json:"orderId"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
}

func (j *OrderReceivedJob) Handle() error {
	logger.Info("order: received",
		"order_id", j.OrderID, "customer", j.Name, "items", len(j.Items), "total", j.Total)
	return nil
}

// RegisterJobs makes this package's job types known to the queue.
// Call once at boot before starting workers.
func RegisterJobs() {
	queue.Register("*services.OrderReceivedJob", func() queue.Job { return &OrderReceivedJob{} })
}

// OrderService accepts checkout requests.
type OrderService struct {
	beans *repositories.BeanRepository
}

func NewOrderService(beans *repositories.BeanRepository) *OrderService {
	return &OrderService{beans: beans}
}

// Place validates the order's beans, prices it, and queues it for logging.
// Returns the generated order id.
func (s *OrderService) Place(req OrderRequest) (string, float64, error) {
	// The struct validator does not descend into slices; check each line here.
	var total float64
	for i, item := range req.Items {
		if errs := validate.Struct(item); validate.HasErrors(errs) {
			for _, msg := range errs {
				return "", 0, apperr.InvalidArgumentf("items[%d]: %s", i, msg)
			}
		}
		bean, err := s.beans.Find(item.BeanID)
		if err != nil {
			return "", 0, err
		}
		total += bean.Cost * float64(item.Quantity)
	}

	orderID := uuid.NewString()
	job := &OrderReceivedJob{
		OrderID: orderID,
		Name:    req.Name,
		Email:   req.Email,
		Items:   req.Items,
		Total:   total,
	}
	if err := queue.Dispatch(job); err != nil {
		return "", 0, fmt.Errorf("order: dispatch: %w", err)
	}

	return orderID, total, nil
}
