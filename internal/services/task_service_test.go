package services

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/adanyl0v/go-task-planner/internal/models"
)

// fakeTaskStorage keeps tasks in memory and mirrors the document
// store's contract: generated ids, maintained timestamps, inclusive
// date windows and plain lexicographic ordering on startTime.
type fakeTaskStorage struct {
	tasks []*models.Task
}

func (f *fakeTaskStorage) InsertTask(_ context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	f.tasks = append(f.tasks, &stored)
	return task, nil
}

func (f *fakeTaskStorage) FindTaskByID(_ context.Context, id string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidTaskID
	}
	for _, task := range f.tasks {
		if task.ID == objectID {
			found := *task
			return &found, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (f *fakeTaskStorage) FindTasks(_ context.Context, filter TaskFilter) ([]*models.Task, error) {
	matched := make([]*models.Task, 0)
	for _, task := range f.tasks {
		if filter.From != nil && task.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && task.Date.After(*filter.To) {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(task.Title), q) &&
				!strings.Contains(strings.ToLower(task.Description), q) {
				continue
			}
		}
		found := *task
		matched = append(matched, &found)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if filter.Sort == SortByStartTime {
			return matched[i].StartTime < matched[j].StartTime
		}
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.Before(matched[j].Date)
		}
		return matched[i].StartTime < matched[j].StartTime
	})
	return matched, nil
}

func (f *fakeTaskStorage) UpdateTaskByID(_ context.Context, id string, patch TaskPatch) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidTaskID
	}
	for _, task := range f.tasks {
		if task.ID != objectID {
			continue
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Date != nil {
			task.Date = *patch.Date
		}
		if patch.StartTime != nil {
			task.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			task.EndTime = *patch.EndTime
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		task.UpdatedAt = time.Now().UTC()

		updated := *task
		return &updated, nil
	}
	return nil, ErrTaskNotFound
}

func (f *fakeTaskStorage) DeleteTaskByID(_ context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidTaskID
	}
	for i, task := range f.tasks {
		if task.ID == objectID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

func newTestService() (TaskService, *fakeTaskStorage) {
	storage := &fakeTaskStorage{}
	return NewTaskService(zerolog.Nop(), storage), storage
}

func mustCreate(t *testing.T, svc TaskService, params CreateTaskParams) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), params)
	require.NoError(t, err)
	return task
}

func dayParams(title, startTime string, date time.Time) CreateTaskParams {
	return CreateTaskParams{
		Title:     title,
		Date:      date,
		StartTime: startTime,
		EndTime:   "11:00",
	}
}

func TestCreateTaskValidation(t *testing.T) {
	valid := CreateTaskParams{
		Title:     "Team Meeting",
		Date:      time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	cases := []struct {
		name   string
		mutate func(p *CreateTaskParams)
		want   error
	}{
		{"empty title", func(p *CreateTaskParams) { p.Title = "" }, ErrTitleRequired},
		{"title too long", func(p *CreateTaskParams) { p.Title = strings.Repeat("x", 201) }, ErrTitleTooLong},
		{"description too long", func(p *CreateTaskParams) { p.Description = strings.Repeat("x", 1001) }, ErrDescriptionTooLong},
		{"missing date", func(p *CreateTaskParams) { p.Date = time.Time{} }, ErrDateRequired},
		{"missing start time", func(p *CreateTaskParams) { p.StartTime = "" }, ErrStartTimeRequired},
		{"missing end time", func(p *CreateTaskParams) { p.EndTime = "" }, ErrEndTimeRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, storage := newTestService()

			params := valid
			tc.mutate(&params)

			_, err := svc.CreateTask(context.Background(), params)
			require.ErrorIs(t, err, tc.want)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Empty(t, storage.tasks, "no record must be persisted on validation failure")
		})
	}
}

func TestCreateTask(t *testing.T) {
	svc, _ := newTestService()

	task := mustCreate(t, svc, CreateTaskParams{
		Title:     "Team Meeting",
		Date:      time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "10:00",
	})

	require.False(t, task.ID.IsZero(), "storage must assign an id")
	require.Equal(t, models.StatusPending, task.Status)
	require.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), task.Date,
		"date must be normalized to midnight UTC")
	require.False(t, task.CreatedAt.IsZero())
	require.False(t, task.UpdatedAt.IsZero())
}

func TestTasksForDayTextualOrdering(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	mustCreate(t, svc, dayParams("late morning", "9:00 AM", day))
	mustCreate(t, svc, dayParams("early morning", "10:00 AM", day))
	mustCreate(t, svc, dayParams("other day", "08:00", day.AddDate(0, 0, 1)))

	tasks, err := svc.TasksForDay(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, tasks, 2, "only tasks on the reference UTC day")

	// startTime is plain text: "10:00 AM" sorts before "9:00 AM"
	// because '1' < '9', even though it is chronologically later.
	require.Equal(t, "10:00 AM", tasks[0].StartTime)
	require.Equal(t, "9:00 AM", tasks[1].StartTime)
}

func TestListTasksSortedByDateThenStartTime(t *testing.T) {
	svc, _ := newTestService()
	monday := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	mustCreate(t, svc, dayParams("b", "10:00", monday.AddDate(0, 0, 1)))
	mustCreate(t, svc, dayParams("c", "09:00", monday.AddDate(0, 0, 1)))
	mustCreate(t, svc, dayParams("a", "12:00", monday))

	tasks, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "a", tasks[0].Title)
	require.Equal(t, "c", tasks[1].Title)
	require.Equal(t, "b", tasks[2].Title)
}

func TestTasksForWeekWindow(t *testing.T) {
	svc, _ := newTestService()
	// 2024-06-12 is a Wednesday; its week is 2024-06-10 .. 2024-06-16.
	wednesday := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	mustCreate(t, svc, dayParams("monday", "09:00", time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)))
	mustCreate(t, svc, dayParams("sunday", "09:00", time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC)))
	mustCreate(t, svc, dayParams("previous sunday", "09:00", time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC)))
	mustCreate(t, svc, dayParams("next monday", "09:00", time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)))

	tasks, err := svc.TasksForWeek(context.Background(), wednesday)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "monday", tasks[0].Title)
	require.Equal(t, "sunday", tasks[1].Title)
}

func TestWeeklySummary(t *testing.T) {
	svc, _ := newTestService()
	ref := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	day := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)

	first := mustCreate(t, svc, dayParams("one", "09:00", day))
	mustCreate(t, svc, dayParams("two", "10:00", day))
	mustCreate(t, svc, dayParams("three", "11:00", day))
	mustCreate(t, svc, dayParams("outside window", "09:00", day.AddDate(0, 0, 14)))

	_, err := svc.UpdateTaskStatus(context.Background(), first.ID.Hex(), "completed")
	require.NoError(t, err)

	summary, err := svc.WeeklySummary(context.Background(), ref)
	require.NoError(t, err)

	require.Equal(t, 3, summary.Total)
	require.Equal(t, 1, summary.Completed)
	require.Equal(t, 2, summary.Pending)
	require.Equal(t, summary.Total, summary.Completed+summary.Pending)
	require.Equal(t, 33, summary.Progress, "round(1/3*100)")
	require.Len(t, summary.Tasks, 3)
	require.Equal(t, "2024-06-10", summary.Week.StartDate)
	require.Equal(t, "2024-06-16", summary.Week.EndDate)
}

func TestWeeklySummaryProgressRounding(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty week", 0, 0, 0},
		{"one of three", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"all completed", 4, 4, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService()
			day := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)

			for i := 0; i < tc.total; i++ {
				task := mustCreate(t, svc, dayParams("task", "09:00", day))
				if i < tc.completed {
					_, err := svc.UpdateTaskStatus(context.Background(), task.ID.Hex(), "completed")
					require.NoError(t, err)
				}
			}

			summary, err := svc.WeeklySummary(context.Background(), day)
			require.NoError(t, err)
			require.Equal(t, tc.want, summary.Progress)
		})
	}
}

func TestSearchTasks(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	mustCreate(t, svc, dayParams("Team Meeting", "09:00", day))

	withNotes := dayParams("standup", "10:00", day)
	withNotes.Description = "collect the meeting notes beforehand"
	mustCreate(t, svc, withNotes)

	mustCreate(t, svc, dayParams("groceries", "18:00", day))

	tasks, err := svc.SearchTasks(context.Background(), "MEETING")
	require.NoError(t, err)
	require.Len(t, tasks, 2, "matches title and description case-insensitively")

	tasks, err = svc.SearchTasks(context.Background(), "no such task")
	require.NoError(t, err)
	require.Empty(t, tasks, "no results is a successful empty result")

	_, err = svc.SearchTasks(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptySearchQuery)
}

func TestUpdateTaskPartial(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	task := mustCreate(t, svc, CreateTaskParams{
		Title:       "original",
		Description: "keep me",
		Date:        day,
		StartTime:   "09:00",
		EndTime:     "10:00",
	})

	newTitle := "renamed"
	newStatus := "completed"
	updated, err := svc.UpdateTask(context.Background(), task.ID.Hex(), UpdateTaskParams{
		Title:  &newTitle,
		Status: &newStatus,
	})
	require.NoError(t, err)

	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, models.StatusCompleted, updated.Status)
	require.Equal(t, "keep me", updated.Description, "omitted fields stay unchanged")
	require.Equal(t, "09:00", updated.StartTime)
}

func TestUpdateTaskValidation(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	task := mustCreate(t, svc, dayParams("task", "09:00", day))

	empty := ""
	badStatus := "archived"

	_, err := svc.UpdateTask(context.Background(), task.ID.Hex(), UpdateTaskParams{Title: &empty})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.UpdateTask(context.Background(), task.ID.Hex(), UpdateTaskParams{Status: &badStatus})
	require.ErrorIs(t, err, ErrInvalidTaskStatus)

	_, err = svc.UpdateTask(context.Background(), primitive.NewObjectID().Hex(), UpdateTaskParams{})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdateTaskStatus(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	task := mustCreate(t, svc, dayParams("task", "09:00", day))

	_, err := svc.UpdateTaskStatus(context.Background(), task.ID.Hex(), "archived")
	require.ErrorIs(t, err, ErrInvalidTaskStatus)

	updated, err := svc.UpdateTaskStatus(context.Background(), task.ID.Hex(), "completed")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)

	_, err = svc.UpdateTaskStatus(context.Background(), primitive.NewObjectID().Hex(), "pending")
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	svc, _ := newTestService()
	day := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	task := mustCreate(t, svc, dayParams("task", "09:00", day))

	missing := primitive.NewObjectID().Hex()
	err := svc.DeleteTask(context.Background(), missing)
	require.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(context.Background(), task.ID.Hex())
	require.NoError(t, err)

	_, err = svc.GetTaskByID(context.Background(), task.ID.Hex())
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestGetTaskByIDInvalidHex(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetTaskByID(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, ErrInvalidTaskID)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}
