package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qsystem/frontgate/internal/middleware"
	"github.com/qsystem/frontgate/internal/proxy"
	"github.com/qsystem/frontgate/internal/static"
)

// Register wires the gateway: request tagging and logging first, then the
// proxy (matched prefixes never reach the static host), then the bundle.
func Register(r *gin.Engine, p *proxy.Proxy, host *static.Host, logger *zap.Logger) {
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(gin.Recovery())
	r.Use(p.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	host.Register(r)
}
