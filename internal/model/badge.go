package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BadgeConditionType string

const (
	ConditionCompleteSkills  BadgeConditionType = "complete_skills"
	ConditionQuizScore       BadgeConditionType = "quiz_score"
	ConditionCompleteCourses BadgeConditionType = "complete_courses"
	ConditionCustom          BadgeConditionType = "custom"
)

// RawBadgeCondition is the stored shape of an unlock condition:
// a type discriminant plus the union of all variant payloads.
type RawBadgeCondition struct {
	Type     BadgeConditionType `bson:"type" json:"type"`
	Value    int                `bson:"value" json:"value"`
	SkillIDs []string           `bson:"skillIds,omitempty" json:"skillIds,omitempty"`
	QuizID   string             `bson:"quizId,omitempty" json:"quizId,omitempty"`
}

// BadgeCondition is the decoded sum type. Exactly one variant per condition
// kind, each carrying only the fields it needs.
type BadgeCondition interface {
	conditionType() BadgeConditionType
}

// QuizScoreCondition unlocks when a submitted quiz percentage reaches Value.
type QuizScoreCondition struct {
	Value  int
	QuizID string
}

// CompleteSkillsCondition unlocks when the user holds Value skills at level
// 100. SkillIDs is carried through from stored conditions but does not
// narrow the count; every completed skill qualifies.
type CompleteSkillsCondition struct {
	Value    int
	SkillIDs []string
}

// CompleteCoursesCondition unlocks when the user has Value completed
// course progress records.
type CompleteCoursesCondition struct {
	Value int
}

// CustomCondition is reserved for future rule types and never unlocks.
type CustomCondition struct {
	Value int
}

func (QuizScoreCondition) conditionType() BadgeConditionType       { return ConditionQuizScore }
func (CompleteSkillsCondition) conditionType() BadgeConditionType  { return ConditionCompleteSkills }
func (CompleteCoursesCondition) conditionType() BadgeConditionType { return ConditionCompleteCourses }
func (CustomCondition) conditionType() BadgeConditionType          { return ConditionCustom }

// Decode maps the stored record onto its variant.
func (r RawBadgeCondition) Decode() (BadgeCondition, error) {
	switch r.Type {
	case ConditionQuizScore:
		return QuizScoreCondition{Value: r.Value, QuizID: r.QuizID}, nil
	case ConditionCompleteSkills:
		return CompleteSkillsCondition{Value: r.Value, SkillIDs: r.SkillIDs}, nil
	case ConditionCompleteCourses:
		return CompleteCoursesCondition{Value: r.Value}, nil
	case ConditionCustom:
		return CustomCondition{Value: r.Value}, nil
	default:
		return nil, fmt.Errorf("unknown badge condition type %q", r.Type)
	}
}

// Badge is a catalog achievement. Per-user unlocks live in UserBadge claim
// records, never on the badge itself.
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Icon        *string            `bson:"icon,omitempty" json:"icon,omitempty"`
	Color       *string            `bson:"color,omitempty" json:"color,omitempty"`
	Image       *string            `bson:"image,omitempty" json:"image,omitempty"`
	SkillID     *string            `bson:"skillId,omitempty" json:"skillId,omitempty"`
	Condition   *RawBadgeCondition `bson:"condition,omitempty" json:"condition,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// UserBadge records one user's claim on one badge.
type UserBadge struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	BadgeID    string             `bson:"badgeId" json:"badgeId"`
	UnlockedAt time.Time          `bson:"unlockedAt" json:"unlockedAt"`
}

type BadgeUpdate struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *string
	Image       *string
	SkillID     *string
	Condition   *RawBadgeCondition
}

func (u BadgeUpdate) SetDoc() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Icon != nil {
		set["icon"] = *u.Icon
	}
	if u.Color != nil {
		set["color"] = *u.Color
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.SkillID != nil {
		set["skillId"] = *u.SkillID
	}
	if u.Condition != nil {
		set["condition"] = *u.Condition
	}
	return set
}
