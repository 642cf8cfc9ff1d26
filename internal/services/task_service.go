package services

import (
	"context"
	"math"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-planner/internal/models"
	"github.com/adanyl0v/go-task-planner/internal/schedule"
)

type taskServiceImpl struct {
	logger  zerolog.Logger
	storage TaskStorage
}

func NewTaskService(
	logger zerolog.Logger,
	storage TaskStorage,
) TaskService {
	return &taskServiceImpl{
		logger:  logger,
		storage: storage,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	switch {
	case params.Title == "":
		return nil, ErrTitleRequired
	case utf8.RuneCountInString(params.Title) > models.TitleMaxLen:
		return nil, ErrTitleTooLong
	case utf8.RuneCountInString(params.Description) > models.DescriptionMaxLen:
		return nil, ErrDescriptionTooLong
	case params.Date.IsZero():
		return nil, ErrDateRequired
	case params.StartTime == "":
		return nil, ErrStartTimeRequired
	case params.EndTime == "":
		return nil, ErrEndTimeRequired
	}

	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Date:        schedule.StartOfDay(params.Date),
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Status:      models.StatusPending,
	}

	task, err := s.storage.InsertTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID.Hex()).
		Str("date", schedule.FormatDate(task.Date)).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.storage.FindTasks(ctx, TaskFilter{
		Sort: SortByDateStartTime,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	return tasks, nil
}

func (s *taskServiceImpl) TasksForDay(ctx context.Context, ref time.Time) ([]*models.Task, error) {
	from := schedule.StartOfDay(ref)
	to := schedule.EndOfDay(ref)

	tasks, err := s.storage.FindTasks(ctx, TaskFilter{
		From: &from,
		To:   &to,
		Sort: SortByStartTime,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("date", schedule.FormatDate(ref)).
			Msg("failed to list tasks for day")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("date", schedule.FormatDate(ref)).
		Msg("listed tasks for day")
	return tasks, nil
}

func (s *taskServiceImpl) TasksForWeek(ctx context.Context, ref time.Time) ([]*models.Task, error) {
	week := schedule.WeekOf(ref)

	tasks, err := s.storage.FindTasks(ctx, TaskFilter{
		From: &week.Start,
		To:   &week.End,
		Sort: SortByDateStartTime,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("week_start", week.StartDate).
			Msg("failed to list tasks for week")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("week_start", week.StartDate).
		Str("week_end", week.EndDate).
		Msg("listed tasks for week")
	return tasks, nil
}

func (s *taskServiceImpl) WeeklySummary(ctx context.Context, ref time.Time) (*WeeklySummary, error) {
	week := schedule.WeekOf(ref)

	tasks, err := s.storage.FindTasks(ctx, TaskFilter{
		From: &week.Start,
		To:   &week.End,
		Sort: SortByDateStartTime,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("week_start", week.StartDate).
			Msg("failed to fetch tasks for weekly summary")
		return nil, err
	}

	summary := &WeeklySummary{
		Week:  week,
		Total: len(tasks),
		Tasks: tasks,
	}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusCompleted:
			summary.Completed++
		case models.StatusPending:
			summary.Pending++
		}
	}
	if summary.Total > 0 {
		summary.Progress = int(math.Round(float64(summary.Completed) / float64(summary.Total) * 100))
	}

	s.logger.Info().
		Int("total", summary.Total).
		Int("completed", summary.Completed).
		Int("pending", summary.Pending).
		Int("progress", summary.Progress).
		Str("week_start", week.StartDate).
		Msg("computed weekly summary")
	return summary, nil
}

func (s *taskServiceImpl) SearchTasks(ctx context.Context, query string) ([]*models.Task, error) {
	if query == "" {
		return nil, ErrEmptySearchQuery
	}

	tasks, err := s.storage.FindTasks(ctx, TaskFilter{
		Search: query,
		Sort:   SortByDateStartTime,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("query", query).
			Msg("failed to search tasks")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("query", query).
		Msg("searched tasks")
	return tasks, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.storage.FindTaskByID(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to get task")
		return nil, err
	}

	s.logger.Debug().
		Str("task_id", id).
		Msg("fetched task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, params UpdateTaskParams) (*models.Task, error) {
	patch := TaskPatch{
		Description: params.Description,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, ErrTitleRequired
		}
		if utf8.RuneCountInString(*params.Title) > models.TitleMaxLen {
			return nil, ErrTitleTooLong
		}
		patch.Title = params.Title
	}
	if params.Description != nil && utf8.RuneCountInString(*params.Description) > models.DescriptionMaxLen {
		return nil, ErrDescriptionTooLong
	}
	if params.Date != nil {
		date := schedule.StartOfDay(*params.Date)
		patch.Date = &date
	}
	if params.StartTime != nil && *params.StartTime == "" {
		return nil, ErrStartTimeRequired
	}
	if params.EndTime != nil && *params.EndTime == "" {
		return nil, ErrEndTimeRequired
	}
	if params.Status != nil {
		status := models.Status(*params.Status)
		if !status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		patch.Status = &status
	}

	task, err := s.storage.UpdateTaskByID(ctx, id, patch)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id string, status string) (*models.Task, error) {
	parsed := models.Status(status)
	if !parsed.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.storage.UpdateTaskByID(ctx, id, TaskPatch{Status: &parsed})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Str("status", status).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", id).
		Str("status", status).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	err := s.storage.DeleteTaskByID(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}
