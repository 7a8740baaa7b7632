package http_health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StorePinger reports whether the backing store answers.
type StorePinger interface {
	Ping() error
}

type Controller struct {
	store StorePinger
}

func New(store StorePinger) *Controller {
	return &Controller{store: store}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.health)
}

// @Summary Service health
// @Tags Service operations
// @Produce json
// @Success 200 {object} map[string]string "Service and store are up"
// @Failure 503 {object} map[string]string "Store unreachable"
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	if err := c.store.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
