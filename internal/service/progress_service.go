package service

import (
	"context"
	"errors"
	"math"

	"skillforge_backend/internal/event"
	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	CourseRepo   *repository.CourseRepository
	USPRepo      *repository.UserSkillProgressRepository
	Notifier     *NotificationService
	Events       *event.Publisher
	Logger       *zap.Logger
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	uspRepo *repository.UserSkillProgressRepository,
	notifier *NotificationService,
	events *event.Publisher,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		CourseRepo:   courseRepo,
		USPRepo:      uspRepo,
		Notifier:     notifier,
		Events:       events,
		Logger:       logger,
	}
}

// Percentage converts part/total into an integer percent, round-half-up.
// A zero denominator yields 0, never an error.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// StartLesson creates the lesson progress record if missing. An existing
// record only gets its lastAccessedAt refreshed; percentage is preserved.
func (s *ProgressService) StartLesson(ctx context.Context, userID, lessonID string) (*model.Progress, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	key := model.ProgressKey{LessonID: lessonID, CourseID: lesson.CourseID}
	existing, err := s.ProgressRepo.FindByKey(ctx, userID, key)
	if err == nil {
		if err := s.ProgressRepo.Upsert(ctx, userID, key, existing.Percentage, existing.Completed); err != nil {
			return nil, err
		}
	} else if errors.Is(err, mongo.ErrNoDocuments) {
		if err := s.ProgressRepo.Upsert(ctx, userID, key, 0, false); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}
	return s.ProgressRepo.FindByKey(ctx, userID, key)
}

// CompleteLesson marks the lesson done and re-derives the parent course's
// percentage from its completed lesson count.
func (s *ProgressService) CompleteLesson(ctx context.Context, userID, lessonID string) (*model.Progress, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	key := model.ProgressKey{LessonID: lessonID, CourseID: lesson.CourseID}
	if err := s.ProgressRepo.Upsert(ctx, userID, key, 100, true); err != nil {
		return nil, err
	}
	if err := s.recomputeCoursePercentage(ctx, userID, lesson.CourseID); err != nil {
		return nil, err
	}
	return s.ProgressRepo.FindByKey(ctx, userID, key)
}

// recomputeCoursePercentage re-derives the course record's percentage from
// completed lessons. Completion stays explicit: hitting 100% here never
// flips the completed flag, only CompleteCourse does.
func (s *ProgressService) recomputeCoursePercentage(ctx context.Context, userID, courseID string) error {
	total, err := s.LessonRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return err
	}
	done, err := s.ProgressRepo.CompletedLessonIDs(ctx, userID, courseID)
	if err != nil {
		return err
	}

	pct := Percentage(len(done), int(total))
	key := model.ProgressKey{CourseID: courseID}
	completed := false
	if existing, err := s.ProgressRepo.FindByKey(ctx, userID, key); err == nil {
		completed = existing.Completed
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if completed {
		pct = 100
	}
	return s.ProgressRepo.Upsert(ctx, userID, key, pct, completed)
}

// StartCourse records that the user opened a course.
func (s *ProgressService) StartCourse(ctx context.Context, userID, courseID string) (*model.Progress, error) {
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	key := model.ProgressKey{CourseID: courseID}
	existing, err := s.ProgressRepo.FindByKey(ctx, userID, key)
	if err == nil {
		if err := s.ProgressRepo.Upsert(ctx, userID, key, existing.Percentage, existing.Completed); err != nil {
			return nil, err
		}
	} else if errors.Is(err, mongo.ErrNoDocuments) {
		if err := s.ProgressRepo.Upsert(ctx, userID, key, 0, false); err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}
	return s.ProgressRepo.FindByKey(ctx, userID, key)
}

// CompleteCourse is the explicit confirmation step. It pins the course
// record at 100%, re-derives the skill level, and announces the completion.
func (s *ProgressService) CompleteCourse(ctx context.Context, userID, courseID string) (*model.Progress, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	key := model.ProgressKey{CourseID: courseID}
	if err := s.ProgressRepo.Upsert(ctx, userID, key, 100, true); err != nil {
		return nil, err
	}
	if err := s.RecomputeSkillLevel(ctx, userID, course.SkillID); err != nil {
		return nil, err
	}

	s.Events.Publish(event.CourseCompleted, map[string]string{
		"userId":   userID,
		"courseId": courseID,
		"skillId":  course.SkillID,
	})
	s.Notifier.notifyProgress(ctx, userID, "Course completed: "+course.Title, courseID)

	return s.ProgressRepo.FindByKey(ctx, userID, key)
}

// RecomputeSkillLevel re-derives the denormalized skill level from scratch:
// completed course records intersected with the skill's current course set.
// No enrollment record means nothing to update.
func (s *ProgressService) RecomputeSkillLevel(ctx context.Context, userID, skillID string) error {
	courses, err := s.CourseRepo.FindBySkill(ctx, skillID)
	if err != nil {
		return err
	}
	completedIDs, err := s.ProgressRepo.CompletedCourseIDs(ctx, userID)
	if err != nil {
		return err
	}

	completed := 0
	for _, c := range courses {
		if completedIDs[c.ID.Hex()] {
			completed++
		}
	}
	level := Percentage(completed, len(courses))
	return s.USPRepo.UpdateAggregates(ctx, userID, skillID, level, completed, len(courses))
}

// UserProgress returns the user's progress records, most recently touched
// first.
func (s *ProgressService) UserProgress(ctx context.Context, userID string) ([]model.Progress, error) {
	return s.ProgressRepo.FindByUser(ctx, userID)
}

// History returns the user's completed records, most recent completion
// first.
func (s *ProgressService) History(ctx context.Context, userID string) ([]model.Progress, error) {
	return s.ProgressRepo.FindCompletedByUser(ctx, userID)
}
