package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-planner/internal/services"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{
		"success": false,
		"message": err.Message,
	})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalError(message string) apiError {
	return newAPIError(http.StatusInternalServerError, message)
}

// abortWithServiceError translates the three service error kinds into
// the transport mapping: validation 400, not found 404, everything
// else is the storage collaborator failing and surfaces as 500.
func abortWithServiceError(c *gin.Context, err error, internalMessage string) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		abort(c, newBadRequestError(validationErr.Error()))
		return
	}
	if errors.Is(err, services.ErrTaskNotFound) {
		abort(c, newNotFoundError("Task not found"))
		return
	}
	abort(c, newInternalError(internalMessage))
}
