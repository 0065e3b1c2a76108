package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
	ResourceDocument ResourceType = "document"
	ResourceLink     ResourceType = "link"
)

type Resource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    string             `bson:"courseId" json:"courseId"`
	Type        ResourceType       `bson:"type" json:"type"`
	URL         string             `bson:"url" json:"url"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
