package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fittrack/exercise-tracker/docs"
	"github.com/fittrack/exercise-tracker/internal/api/handler"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

// Deps carries everything the router needs. Mongo and Redis are optional and
// only feed the readiness probe; services are constructed by the caller so
// the router stays agnostic of the chosen store.
type Deps struct {
	Users     ports.UserService
	Exercises ports.ExerciseService
	Mongo     *mongo.Database
	Redis     *redis.Client
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("fittrack"))

	// --- Handlers ---
	userHandler := handler.NewUserHandler(deps.Users)
	exerciseHandler := handler.NewExerciseHandler(deps.Exercises)

	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List)
	e.POST("/users/:id/exercises", exerciseHandler.Add)
	e.GET("/users/:id/logs", exerciseHandler.Logs)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
