package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-planner/internal/models"
	"github.com/adanyl0v/go-task-planner/internal/services"
)

func respondWithData(c *gin.Context, code int, data any, message string) {
	body := gin.H{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(code, body)
}

func respondWithList(c *gin.Context, tasks []*models.Task) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// parseDate accepts either a full RFC 3339 timestamp or a plain
// YYYY-MM-DD calendar date, the two shapes clients send.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, value)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	params := services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if req.Date != "" {
		params.Date, err = parseDate(req.Date)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("date", req.Date).
				Msg("failed to parse task date")
			abort(c, newBadRequestError("invalid task date"))
			return
		}
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		abortWithServiceError(c, err, "Error creating task")
		return
	}

	respondWithData(c, http.StatusCreated, task, "Task created successfully")
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c)
	if err != nil {
		abortWithServiceError(c, err, "Error fetching tasks")
		return
	}

	respondWithList(c, tasks)
}

func (h *handlerImpl) HandleTodayTasks(c *gin.Context) {
	tasks, err := h.tasks.TasksForDay(c, time.Now())
	if err != nil {
		abortWithServiceError(c, err, "Error fetching today tasks")
		return
	}

	respondWithList(c, tasks)
}

func (h *handlerImpl) HandleWeekTasks(c *gin.Context) {
	tasks, err := h.tasks.TasksForWeek(c, time.Now())
	if err != nil {
		abortWithServiceError(c, err, "Error fetching week tasks")
		return
	}

	respondWithList(c, tasks)
}

type weeklySummaryResponse struct {
	Completed int            `json:"completed"`
	Pending   int            `json:"pending"`
	Progress  int            `json:"progress"`
	Total     int            `json:"total"`
	Tasks     []*models.Task `json:"tasks"`
}

func (h *handlerImpl) HandleWeeklySummary(c *gin.Context) {
	summary, err := h.tasks.WeeklySummary(c, time.Now())
	if err != nil {
		abortWithServiceError(c, err, "Error fetching weekly summary")
		return
	}

	respondWithData(c, http.StatusOK, gin.H{
		"currentWeek": weeklySummaryResponse{
			Completed: summary.Completed,
			Pending:   summary.Pending,
			Progress:  summary.Progress,
			Total:     summary.Total,
			Tasks:     summary.Tasks,
		},
	}, "")
}

func (h *handlerImpl) HandleSearchTasks(c *gin.Context) {
	tasks, err := h.tasks.SearchTasks(c, c.Query("q"))
	if err != nil {
		abortWithServiceError(c, err, "Error searching tasks")
		return
	}

	respondWithList(c, tasks)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTaskByID(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Error fetching task")
		return
	}

	respondWithData(c, http.StatusOK, task, "")
}

type updateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	params := services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("date", *req.Date).
				Msg("failed to parse task date")
			abort(c, newBadRequestError("invalid task date"))
			return
		}
		params.Date = &date
	}

	task, err := h.tasks.UpdateTask(c, c.Param("id"), params)
	if err != nil {
		abortWithServiceError(c, err, "Error updating task")
		return
	}

	respondWithData(c, http.StatusOK, task, "Task updated successfully")
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError("invalid request body"))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, c.Param("id"), req.Status)
	if err != nil {
		abortWithServiceError(c, err, "Error updating task status")
		return
	}

	respondWithData(c, http.StatusOK, task, "Task status updated successfully")
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, c.Param("id"))
	if err != nil {
		abortWithServiceError(c, err, "Error deleting task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}
