package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Jeomhps/reservation-planner/internal/db"
	"github.com/Jeomhps/reservation-planner/internal/handlers/admin"
	"github.com/Jeomhps/reservation-planner/internal/handlers/auth"
	"github.com/Jeomhps/reservation-planner/internal/handlers/common"
	"github.com/Jeomhps/reservation-planner/internal/handlers/customers"
	"github.com/Jeomhps/reservation-planner/internal/handlers/health"
	"github.com/Jeomhps/reservation-planner/internal/handlers/reservations"
	"github.com/Jeomhps/reservation-planner/internal/handlers/restaurants"
	"github.com/Jeomhps/reservation-planner/internal/middleware"
	"github.com/Jeomhps/reservation-planner/internal/seed"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	DB            *db.DB
	Log           *zap.Logger
	Fixture       seed.Fixture
	JWTSecret     string
	AdminUsername string
	AdminPassword string
}

// New builds the engine with every route mounted.
func New(d Deps) (*gin.Engine, error) {
	authH, err := auth.New(d.AdminUsername, d.AdminPassword, d.JWTSecret, d.Log)
	if err != nil {
		return nil, err
	}
	custH := customers.New(d.DB, d.Log)
	restH := restaurants.New(d.DB, d.Log)
	resH := reservations.New(d.DB, d.Log)
	adminH := admin.New(d.DB, d.Fixture, d.Log)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))
	r.NoRoute(func(c *gin.Context) {
		common.Abort(c, http.StatusNotFound, "not_found", "")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Abort(c, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	// Public
	r.GET("/healthz", health.Handler(d.DB, d.Log))
	r.POST("/auth/login", authH.Login)

	api := r.Group("/api")
	{
		api.GET("/customers", custH.List)
		api.POST("/customers", custH.Create)
		api.GET("/restaurants", restH.List)
		api.POST("/restaurants", restH.Create)
		api.GET("/reservations", resH.List)
		api.POST("/customers/:id/reservations", resH.Create)
		api.DELETE("/customers/:id/reservations/:reservation_id", resH.Delete)
	}

	// Authenticated routes exist only when an admin password is configured;
	// otherwise nothing can vouch for a token and they answer 404.
	if !authH.Enabled() {
		d.Log.Warn("ADMIN_PASSWORD is empty; admin login and admin routes are disabled")
		return r, nil
	}
	authed := r.Group("/")
	authed.Use(middleware.JWTAuth(d.JWTSecret))
	{
		authed.GET("/auth/me", authH.Me)

		adm := authed.Group("/api/admin")
		adm.Use(middleware.RequireAdmin())
		adm.POST("/reset", adminH.Reset)
	}

	return r, nil
}
