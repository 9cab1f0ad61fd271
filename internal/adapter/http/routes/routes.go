package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todoapp/internal/adapter/http/handler"
	"todoapp/internal/adapter/http/middleware"
	"todoapp/pkg/config"
	"todoapp/pkg/telemetry"
)

type HandlersConfig struct {
	TodoHandler *handler.TodoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *otelzap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("todoapp"))

	if logger != nil {
		router.Use(middleware.LoggingMiddleware(logger))
	}

	if metrics != nil {
		router.Use(middleware.MetricsMiddleware(metrics))
	}

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.CurrentUserMiddleware(config.DefaultUser))

	todos := router.Group(config.APIBasePath)
	{
		todos.GET("", handlers.TodoHandler.GetAllTodos)
		todos.POST("", handlers.TodoHandler.CreateTodo)
		todos.PUT("/:todoId", handlers.TodoHandler.UpdateTodo)
		todos.DELETE("/:todoId", handlers.TodoHandler.DeleteTodo)
	}

	return router
}

// SetupRouterForTests wires the routes without telemetry middleware.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.CurrentUserMiddleware(config.DefaultUser))

	todos := router.Group(config.APIBasePath)
	{
		todos.GET("", handlers.TodoHandler.GetAllTodos)
		todos.POST("", handlers.TodoHandler.CreateTodo)
		todos.PUT("/:todoId", handlers.TodoHandler.UpdateTodo)
		todos.DELETE("/:todoId", handlers.TodoHandler.DeleteTodo)
	}

	return router
}
