package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CourseType string

const (
	CourseInternal CourseType = "internal"
	CourseExternal CourseType = "external"
)

// Course belongs to a skill. Internal courses own lessons; external courses
// link out to a third-party platform.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	SkillID     string             `bson:"skillId" json:"skillId"`
	Type        CourseType         `bson:"type" json:"type"`
	ExternalURL *string            `bson:"externalUrl,omitempty" json:"externalUrl,omitempty"`
	Lessons     []string           `bson:"lessons,omitempty" json:"lessons,omitempty"`
	Quizzes     []string           `bson:"quizzes,omitempty" json:"quizzes,omitempty"`
	Resources   []string           `bson:"resources,omitempty" json:"resources,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type CourseUpdate struct {
	Title       *string
	Description *string
	Type        *CourseType
	ExternalURL *string
}

func (u CourseUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.ExternalURL != nil {
		set["externalUrl"] = *u.ExternalURL
	}
	return set
}
