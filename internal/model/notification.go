package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationAchievement NotificationType = "achievement"
	NotificationReminder    NotificationType = "reminder"
	NotificationProgress    NotificationType = "progress"
	NotificationSystem      NotificationType = "system"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Content   string             `bson:"content" json:"content"`
	Type      NotificationType   `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	RelatedID *string            `bson:"relatedId,omitempty" json:"relatedId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
