package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LessonContentType string

const (
	LessonText  LessonContentType = "text"
	LessonVideo LessonContentType = "video"
	LessonPDF   LessonContentType = "pdf"
)

// Lesson is ordered within its course. A missing order sorts last.
type Lesson struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	CourseID    string             `bson:"courseId" json:"courseId"`
	Order       *int               `bson:"order,omitempty" json:"order,omitempty"`
	ContentType LessonContentType  `bson:"contentType" json:"contentType"`
	ContentURL  *string            `bson:"contentUrl,omitempty" json:"contentUrl,omitempty"`
	Duration    *int               `bson:"duration,omitempty" json:"duration,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type LessonUpdate struct {
	Title       *string
	Content     *string
	Order       *int
	ContentType *LessonContentType
	ContentURL  *string
	Duration    *int
}

func (u LessonUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	if u.ContentType != nil {
		set["contentType"] = *u.ContentType
	}
	if u.ContentURL != nil {
		set["contentUrl"] = *u.ContentURL
	}
	if u.Duration != nil {
		set["duration"] = *u.Duration
	}
	return set
}
