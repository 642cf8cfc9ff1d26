package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-planner/internal/models"
	"github.com/adanyl0v/go-task-planner/internal/schedule"
)

var ErrTaskNotFound = errors.New("task not found")

// ValidationError marks a failure the caller can fix by correcting
// the input. It is never retried and maps to a 400 at the transport.
type ValidationError struct {
	message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

func (e *ValidationError) Error() string {
	return e.message
}

var (
	ErrTitleRequired      = NewValidationError("task title is required")
	ErrTitleTooLong       = NewValidationError("task title cannot exceed 200 characters")
	ErrDescriptionTooLong = NewValidationError("task description cannot exceed 1000 characters")
	ErrDateRequired       = NewValidationError("task date is required")
	ErrStartTimeRequired  = NewValidationError("task start time is required")
	ErrEndTimeRequired    = NewValidationError("task end time is required")
	ErrInvalidTaskStatus  = NewValidationError("task status must be either pending or completed")
	ErrInvalidTaskID      = NewValidationError("invalid task id format")
	ErrEmptySearchQuery   = NewValidationError("search query is required")
)

type TaskService interface {
	// CreateTask persists a new task with status forced to pending.
	//
	// It returns a ValidationError if title, date, startTime or
	// endTime is missing, or if a length limit is exceeded.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// ListTasks returns every task sorted ascending by (date, startTime).
	// startTime is compared as plain text, not as a clock time.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// TasksForDay returns the tasks scheduled on ref's UTC calendar
	// day, sorted by startTime ascending.
	TasksForDay(ctx context.Context, ref time.Time) ([]*models.Task, error)

	// TasksForWeek returns the tasks inside ref's Monday..Sunday UTC
	// window, sorted by (date, startTime).
	TasksForWeek(ctx context.Context, ref time.Time) ([]*models.Task, error)

	// WeeklySummary aggregates completed/pending counts and an integer
	// completion percentage over ref's week window.
	WeeklySummary(ctx context.Context, ref time.Time) (*WeeklySummary, error)

	// SearchTasks returns tasks whose title or description contains
	// query as a case-insensitive substring, sorted by (date, startTime).
	// It returns ErrEmptySearchQuery if query is empty.
	SearchTasks(ctx context.Context, query string) ([]*models.Task, error)

	// GetTaskByID returns ErrTaskNotFound if no task has the given id.
	GetTaskByID(ctx context.Context, id string) (*models.Task, error)

	// UpdateTask applies the supplied fields and leaves the rest
	// unchanged, re-validating each supplied field with the create
	// constraints. It returns ErrTaskNotFound if the id does not exist.
	UpdateTask(ctx context.Context, id string, params UpdateTaskParams) (*models.Task, error)

	// UpdateTaskStatus returns ErrInvalidTaskStatus unless status is
	// exactly one of the two enumerated values.
	UpdateTaskStatus(ctx context.Context, id string, status string) (*models.Task, error)

	// DeleteTask returns ErrTaskNotFound if the id does not exist.
	DeleteTask(ctx context.Context, id string) error
}

type CreateTaskParams struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Status      *string
}

type WeeklySummary struct {
	Week      schedule.Week
	Completed int
	Pending   int
	Total     int
	Progress  int
	Tasks     []*models.Task
}

// TaskSort selects the storage-level sort order. Sorting happens on the
// raw field values, so startTime orders lexicographically.
type TaskSort int

const (
	SortByDateStartTime TaskSort = iota
	SortByStartTime
)

// TaskFilter narrows a FindTasks call. A nil bound leaves that side of
// the date window open; both bounds are inclusive. Search is matched as
// a case-insensitive substring over title and description.
type TaskFilter struct {
	From   *time.Time
	To     *time.Time
	Search string
	Sort   TaskSort
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Status      *models.Status
}

// TaskStorage is the document collection this service runs against.
// Implementations assign ids on insert, maintain createdAt/updatedAt,
// and return ErrTaskNotFound (or ErrInvalidTaskID for malformed ids)
// from the by-id operations.
type TaskStorage interface {
	InsertTask(ctx context.Context, task *models.Task) (*models.Task, error)
	FindTaskByID(ctx context.Context, id string) (*models.Task, error)
	FindTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error)
	UpdateTaskByID(ctx context.Context, id string, patch TaskPatch) (*models.Task, error)
	DeleteTaskByID(ctx context.Context, id string) error
}
