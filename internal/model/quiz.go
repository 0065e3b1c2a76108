package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPassingScore applies when a quiz does not declare its own threshold.
const DefaultPassingScore = 80

// Quiz is the capstone check for a skill. Passing it validates the skill.
type Quiz struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	SkillID      string             `bson:"skillId" json:"skillId"`
	CourseID     *string            `bson:"courseId,omitempty" json:"courseId,omitempty"`
	Questions    []string           `bson:"questions,omitempty" json:"questions,omitempty"`
	PassingScore *int               `bson:"passingScore,omitempty" json:"passingScore,omitempty"`
	TimeLimit    *int               `bson:"timeLimit,omitempty" json:"timeLimit,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// EffectivePassingScore resolves the threshold, defaulting to 80.
func (q *Quiz) EffectivePassingScore() int {
	if q.PassingScore == nil {
		return DefaultPassingScore
	}
	return *q.PassingScore
}

type QuizUpdate struct {
	Title        *string
	PassingScore *int
	TimeLimit    *int
}

func (u QuizUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.PassingScore != nil {
		set["passingScore"] = *u.PassingScore
	}
	if u.TimeLimit != nil {
		set["timeLimit"] = *u.TimeLimit
	}
	return set
}
