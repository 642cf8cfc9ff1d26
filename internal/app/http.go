package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adanyl0v/go-task-planner/internal/config"
	v1 "github.com/adanyl0v/go-task-planner/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-planner/internal/repository"
	"github.com/adanyl0v/go-task-planner/internal/services"
)

func MustListenAndServeHTTP(mongoClient *mongo.Client) {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router, mongoClient)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine, mongoClient *mongo.Client) {
	mongoCfg := config.Global().Mongo

	taskRepo := repository.NewTaskRepository(
		globalLogger,
		mongoClient.Database(mongoCfg.Database),
		mongoCfg.QueryTimeout,
	)
	err := taskRepo.EnsureIndexes(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure task indexes")
		panic(err)
	}

	taskService := services.NewTaskService(globalLogger, taskRepo)
	v1Handler := v1.New(globalLogger, taskService)

	router.Use(v1.RequestIDMiddleware())
	router.Use(v1.CORSMiddleware())
	router.Use(v1.MetricsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Todo API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tasksRouter := router.Group("/api/tasks")

	// Static routes are registered before the /:id routes so gin does
	// not swallow them as id parameters.
	tasksRouter.GET("/today", v1Handler.HandleTodayTasks)
	tasksRouter.GET("/week", v1Handler.HandleWeekTasks)
	tasksRouter.GET("/summary", v1Handler.HandleWeeklySummary)
	tasksRouter.GET("/search", v1Handler.HandleSearchTasks)

	tasksRouter.POST("", v1Handler.HandleCreateTask)
	tasksRouter.GET("", v1Handler.HandleListTasks)
	tasksRouter.GET("/:id", v1Handler.HandleGetTask)
	tasksRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	tasksRouter.DELETE("/:id", v1Handler.HandleDeleteTask)
	tasksRouter.PATCH("/:id/status", v1Handler.HandleSetTaskStatus)
}
