package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidatedSkill is the durable per-(user, skill) mastery record. Repeated
// validations merge in place: latest timestamp and score win, unlocked badge
// ids accumulate.
type ValidatedSkill struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	SkillID        string             `bson:"skillId" json:"skillId"`
	SkillName      string             `bson:"skillName" json:"skillName"`
	ValidatedAt    time.Time          `bson:"validatedAt" json:"validatedAt"`
	QuizScore      int                `bson:"quizScore" json:"quizScore"`
	BadgesUnlocked []string           `bson:"badgesUnlocked,omitempty" json:"badgesUnlocked,omitempty"`
}
