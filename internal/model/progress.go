package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progress is a user's completion record for exactly one lesson, course or
// quiz. At most one of LessonID/CourseID/QuizID is the upsert key; lesson
// records also carry their course id for cascade cleanup.
type Progress struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"userId" json:"userId"`
	LessonID       *string            `bson:"lessonId,omitempty" json:"lessonId,omitempty"`
	CourseID       *string            `bson:"courseId,omitempty" json:"courseId,omitempty"`
	QuizID         *string            `bson:"quizId,omitempty" json:"quizId,omitempty"`
	Percentage     int                `bson:"percentage" json:"percentage"`
	Completed      bool               `bson:"completed" json:"completed"`
	StartedAt      time.Time          `bson:"startedAt" json:"startedAt"`
	CompletedAt    *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	LastAccessedAt time.Time          `bson:"lastAccessedAt" json:"lastAccessedAt"`
}

// ProgressKey identifies the target of a progress record.
type ProgressKey struct {
	LessonID string
	CourseID string
	QuizID   string
}

func (k ProgressKey) Valid() bool {
	return k.LessonID != "" || k.CourseID != "" || k.QuizID != ""
}

// UserSkillProgress tracks one user's enrollment in one skill. Level is
// derived from completed courses and always recomputable; it is denormalized
// here for cheap reads.
type UserSkillProgress struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"userId"`
	SkillID          string             `bson:"skillId" json:"skillId"`
	Level            int                `bson:"level" json:"level"`
	CoursesCompleted int                `bson:"coursesCompleted" json:"coursesCompleted"`
	TotalCourses     int                `bson:"totalCourses" json:"totalCourses"`
	EnrolledAt       time.Time          `bson:"enrolledAt" json:"enrolledAt"`
	LastAccessedAt   time.Time          `bson:"lastAccessedAt" json:"lastAccessedAt"`
}
