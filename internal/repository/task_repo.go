package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-task-planner/internal/models"
	"github.com/adanyl0v/go-task-planner/internal/services"
)

const TasksCollection = "tasks"

// TaskRepository is the MongoDB implementation of services.TaskStorage.
// It owns the createdAt/updatedAt timestamps and the generated _id.
type TaskRepository struct {
	logger     zerolog.Logger
	collection *mongo.Collection
	timeout    time.Duration
}

func NewTaskRepository(
	logger zerolog.Logger,
	db *mongo.Database,
	timeout time.Duration,
) *TaskRepository {
	return &TaskRepository{
		logger:     logger,
		collection: db.Collection(TasksCollection),
		timeout:    timeout,
	}
}

// EnsureIndexes creates the query indexes the list and filter
// operations rely on. Safe to call on every startup.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to create task indexes")
		return err
	}

	r.logger.Debug().Msg("ensured task indexes")
	return nil
}

func (r *TaskRepository) InsertTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task document")
		return nil, err
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	r.logger.Debug().
		Str("task_id", task.ID.Hex()).
		Msg("inserted task document")
	return task, nil
}

func (r *TaskRepository) FindTaskByID(ctx context.Context, id string) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrInvalidTaskID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var task models.Task
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to find task document")
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) FindTasks(ctx context.Context, filter services.TaskFilter) ([]*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, buildFilter(filter), options.Find().SetSort(buildSort(filter.Sort)))
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to find task documents")
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := make([]*models.Task, 0)
	err = cursor.All(ctx, &tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to decode task documents")
		return nil, err
	}

	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("found task documents")
	return tasks, nil
}

func (r *TaskRepository) UpdateTaskByID(ctx context.Context, id string, patch services.TaskPatch) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, services.ErrInvalidTaskID
	}

	fields := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Date != nil {
		fields["date"] = *patch.Date
	}
	if patch.StartTime != nil {
		fields["startTime"] = *patch.StartTime
	}
	if patch.EndTime != nil {
		fields["endTime"] = *patch.EndTime
	}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var task models.Task
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, services.ErrTaskNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task document")
		return nil, err
	}

	r.logger.Debug().
		Str("task_id", id).
		Msg("updated task document")
	return &task, nil
}

func (r *TaskRepository) DeleteTaskByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return services.ErrInvalidTaskID
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task document")
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrTaskNotFound
	}

	r.logger.Debug().
		Str("task_id", id).
		Msg("deleted task document")
	return nil
}

func buildFilter(filter services.TaskFilter) bson.M {
	query := bson.M{}

	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}

	if filter.Search != "" {
		pattern := primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Search),
			Options: "i",
		}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	return query
}

func buildSort(sort services.TaskSort) bson.D {
	if sort == services.SortByStartTime {
		return bson.D{{Key: "startTime", Value: 1}}
	}
	return bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}
}
