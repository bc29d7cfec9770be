package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the orders routes registered. Extra
// middlewares (instrumentation, CORS) run before the handlers.
func NewRouter(api *OrdersAPI, middlewares ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	for _, mw := range middlewares {
		if mw != nil {
			router.Use(mw)
		}
	}

	pedidos := router.Group("/pedidos")
	{
		pedidos.POST("", api.CreateOrder)
		pedidos.GET("", api.ListOrders)
		pedidos.GET("/:id", api.GetOrder)
		pedidos.PUT("/:id", api.UpdateOrder)
		pedidos.DELETE("/:id", api.DeleteOrder)
	}
	return router
}

// CORS allows the configured frontend origins to call the API with the
// methods and headers the order flow needs.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(origin)] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		_, ok := allowed[strings.ToLower(origin)]
		if !allowAll && !ok {
			c.Next()
			return
		}
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
