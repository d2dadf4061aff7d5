// Package router builds the gin engine: global middleware, health, static
// site and the route groups handed to each module.
package router

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	apphttp "homeloans_backend/internal/http"
	"homeloans_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// New creates the engine and lets every module register its routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		app.Logger.WithContext(c.Request.Context()).Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpkit.ErrorResponse{Error: "Internal server error"})
	}))
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/health", healthHandler(app))

	if dir := app.Config.GetStaticDir(); dir != "" {
		engine.Static("/static", dir)
		engine.StaticFile("/", filepath.Join(dir, "index.html"))
	}

	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "Endpoint not found", nil)
	})

	api := engine.Group("/api")
	authMiddleware := httpkit.AuthRequired(app.Config)
	admin := api.Group("/admin")
	adminProtected := admin.Group("")
	adminProtected.Use(authMiddleware, httpkit.RequireRole("admin"))

	rc := &apphttp.RouterContext{
		Engine:          engine,
		Root:            &engine.RouterGroup,
		API:             api,
		Admin:           adminProtected,
		AdminPublic:     admin,
		Config:          app.Config,
		AuthMiddleware:  authMiddleware,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
		ChatRateLimiter: httpkit.NewPerMinuteLimiter(app.Config.GetChatRateLimitPerMinute(), app.Logger),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		app.Logger.Info("module registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", httpkit.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() || len(cfg.GetCORSOrigins()) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}

func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := app.Health.Ping(ctx); err != nil {
				app.Logger.WithContext(ctx).DatabaseError("health ping", err)
				status = "degraded"
			}
		}
		httpkit.OK(c, gin.H{
			"status":         status,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"api_configured": app.LLMConfigured,
		})
	}
}
