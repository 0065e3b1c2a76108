package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Target      string             `bson:"target" json:"target"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	TargetDate  *time.Time         `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	SkillID     *string            `bson:"skillId,omitempty" json:"skillId,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type GoalUpdate struct {
	Target      *string
	Description *string
	TargetDate  *time.Time
	Completed   *bool
}

func (u GoalUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Target != nil {
		set["target"] = *u.Target
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.TargetDate != nil {
		set["targetDate"] = *u.TargetDate
	}
	if u.Completed != nil {
		set["completed"] = *u.Completed
	}
	return set
}
