package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionText           QuestionType = "text"
)

type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content       string             `bson:"content" json:"content"`
	QuizID        string             `bson:"quizId" json:"quizId"`
	Type          QuestionType       `bson:"type" json:"type"`
	Options       []string           `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswer string             `bson:"correctAnswer" json:"-"`
	Points        int                `bson:"points" json:"points"`
	Order         *int               `bson:"order,omitempty" json:"order,omitempty"`
}

type QuestionUpdate struct {
	Content       *string
	Type          *QuestionType
	Options       []string
	CorrectAnswer *string
	Points        *int
	Order         *int
}

func (u QuestionUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Options != nil {
		set["options"] = u.Options
	}
	if u.CorrectAnswer != nil {
		set["correctAnswer"] = *u.CorrectAnswer
	}
	if u.Points != nil {
		set["points"] = *u.Points
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	return set
}
