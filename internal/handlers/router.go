package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/stillpoint/practice-api/internal/metrics"
	"github.com/stillpoint/practice-api/internal/middleware"
	"github.com/stillpoint/practice-api/internal/models"
)

// RouterOptions carries the optional cross-cutting pieces; tests usually pass
// the zero value.
type RouterOptions struct {
	Limiter        *middleware.RateLimiter
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter wires every route of the API onto a gin engine.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if h.Logger != nil {
		r.Use(middleware.RequestLogger(h.Logger))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	authRoutes := r.Group("/auth")
	if opts.Limiter != nil {
		authRoutes.Use(middleware.RateLimit(opts.Limiter))
	}
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	admin := middleware.RequireRole(string(models.RoleAdmin))

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(h.JWTSecret))
	{
		apiRoutes.GET("/user/:id", h.GetCurrentUser)
		apiRoutes.PUT("/user/:id", h.UpdateCurrentUser)
		apiRoutes.GET("/users", admin, h.ListUsers)

		apiRoutes.GET("/appointments", h.GetAppointments)
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.PUT("/appointments/:id", admin, h.UpdateAppointment)
		apiRoutes.PATCH("/appointments/:id/cancel", h.CancelAppointment)
		apiRoutes.DELETE("/appointments/:id", admin, h.DeleteAppointment)

		apiRoutes.GET("/workbooks", h.GetWorkbooks)
		apiRoutes.POST("/workbooks", admin, h.CreateWorkbook)
		apiRoutes.GET("/workbooks/:id", h.GetWorkbook)
		apiRoutes.PUT("/workbooks/:id", h.UpdateWorkbook)
		apiRoutes.POST("/workbooks/:id/assign", admin, h.AssignWorkbook)
		apiRoutes.DELETE("/workbooks/:id", admin, h.DeleteWorkbook)

		apiRoutes.POST("/chat", h.HandleChat)
	}

	return r
}
