package client

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"

	"github.com/openclaw/clawdesk/internal/client/handlers"
	"github.com/openclaw/clawdesk/internal/client/middleware"
	"github.com/openclaw/clawdesk/internal/gateway"
	"github.com/openclaw/clawdesk/internal/version"
)

type RouteConfig struct {
	Auth middleware.TokenAuthConfig
}

func SetupRoutes(supervisor *gateway.Supervisor, configPath string, routeConfig *RouteConfig) http.Handler {
	r := gin.New()

	rateLimitStore := memory.NewStore()
	rateLimiter := limiter.New(rateLimitStore, limiter.Rate{
		Period: 1 * time.Second,
		Limit:  20,
	})

	gatewayH := handlers.NewGatewayHandler(supervisor)
	configH := handlers.NewConfigHandler(configPath)
	statusH := handlers.NewStatusHandler(supervisor)

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())
	r.Use(middleware.Gzip())
	r.Use(mgin.NewMiddleware(rateLimiter))

	r.GET("/", IndexHandler)

	v1 := r.Group("/v1")
	v1.Use(middleware.TokenAuth(routeConfig.Auth))
	{
		v1.GET("/status", statusH.Status)

		v1Gateway := v1.Group("/gateway")
		{
			v1Gateway.POST("/start", gatewayH.Start)
			v1Gateway.POST("/stop", gatewayH.Stop)
			v1Gateway.GET("/status", gatewayH.Status)
			v1Gateway.GET("/stats", gatewayH.Stats)
			v1Gateway.GET("/probe", gatewayH.Probe)
		}

		v1Config := v1.Group("/config")
		{
			v1Config.GET("", configH.Get)
			v1Config.GET("/apikey", configH.HasAPIKey)
			v1Config.PUT("/apikey", configH.SetAPIKey)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler()
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func IndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Detailed())
}
