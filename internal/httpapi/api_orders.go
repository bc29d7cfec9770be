// Package httpapi exposes the order service as the /pedidos REST surface.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

// OrdersAPI wires HTTP transport with the orders service.
type OrdersAPI struct {
	service ports.Service
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service ports.Service) *OrdersAPI {
	return &OrdersAPI{service: service}
}

// orderPayload is the wire shape of a persisted order. Field names follow the
// stored row contract consumed by the existing frontend.
type orderPayload struct {
	ID           string         `json:"id"`
	Details      domain.Details `json:"detalhes"`
	Plan         string         `json:"plano"`
	Price        int            `json:"preco"`
	Status       string         `json:"status"`
	DeliveryDate string         `json:"prazo_entrega"`
	CreatedAt    string         `json:"created_at"`
}

func toPayload(order *domain.Order) orderPayload {
	return orderPayload{
		ID:           order.ID,
		Details:      order.Details,
		Plan:         string(order.Plan),
		Price:        order.Price,
		Status:       string(order.Status),
		DeliveryDate: order.DeliveryDate,
		CreatedAt:    order.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999Z07:00"),
	}
}

type submitRequest struct {
	Plan    string         `json:"plano"`
	Details domain.Details `json:"detalhes"`
}

type updateRequest struct {
	Details      domain.Details `json:"detalhes"`
	Price        int            `json:"preco"`
	Status       string         `json:"status"`
	DeliveryDate string         `json:"prazoEntrega"`
}

// Post /pedidos
// Submit a new landing-page order
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload submitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, err.Error())
		return
	}
	result, err := api.service.SubmitOrder(c.Request.Context(), domain.Plan(payload.Plan), payload.Details)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"pedido":       toPayload(result.Order),
		"linkWhatsApp": result.ContactLink,
	})
}

// Get /pedidos
// List all orders by creation time ascending
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	payloads := make([]orderPayload, 0, len(orders))
	for _, order := range orders {
		payloads = append(payloads, toPayload(order))
	}
	c.JSON(http.StatusOK, payloads)
}

// Get /pedidos/:id
// Fetch one order plus its regenerated design brief
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, brief, err := api.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pedido": toPayload(order),
		"prompt": brief,
	})
}

// Put /pedidos/:id
// Overwrite details, price, status, and delivery date
func (api *OrdersAPI) UpdateOrder(c *gin.Context) {
	var payload updateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidation(c, err.Error())
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), c.Param("id"), ports.UpdateInput{
		Details:      payload.Details,
		Price:        payload.Price,
		Status:       domain.Status(payload.Status),
		DeliveryDate: payload.DeliveryDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPayload(order))
}

// Delete /pedidos/:id
// Remove an order; removal is idempotent
func (api *OrdersAPI) DeleteOrder(c *gin.Context) {
	confirmation, err := api.service.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": confirmation})
}
