package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the closed set of task completion states. The two string
// values are part of the wire and storage format and must not change.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// Task is scheduled on a calendar day (Date is stored as midnight UTC of
// that day). StartTime and EndTime are free-form labels like "10:00 AM"
// and are never parsed as clock times.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	StartTime   string             `bson:"startTime" json:"startTime"`
	EndTime     string             `bson:"endTime" json:"endTime"`
	Status      Status             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
