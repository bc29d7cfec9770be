package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/application"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

// Error payload keys follow the original wire contract: "erro" with an
// optional "detalhes" on internal failures.

func respondValidation(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"erro": detail})
}

// respondServiceError maps application errors onto the documented statuses:
// validation problems are 400, unknown ids 404, anything else 500 with detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"erro": err.Error()})
	case errors.Is(err, ports.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"erro": "Pedido não encontrado"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"erro":     "Erro interno ao processar pedido",
			"detalhes": err.Error(),
		})
	}
}
