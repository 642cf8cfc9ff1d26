package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-planner/internal/services"
)

type Handler interface {
	HandleCreateTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleTodayTasks(c *gin.Context)
	HandleWeekTasks(c *gin.Context)
	HandleWeeklySummary(c *gin.Context)
	HandleSearchTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
	}
}
