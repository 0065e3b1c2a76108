package service

import (
	"context"
	"errors"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	LessonRepo   *repository.LessonRepository
	QuizRepo     *repository.QuizRepository
	ResourceRepo *repository.ResourceRepository
	SkillRepo    *repository.SkillRepository
	ProgressRepo *repository.ProgressRepository
	Logger       *zap.Logger
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	quizRepo *repository.QuizRepository,
	resourceRepo *repository.ResourceRepository,
	skillRepo *repository.SkillRepository,
	progressRepo *repository.ProgressRepository,
	logger *zap.Logger,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		LessonRepo:   lessonRepo,
		QuizRepo:     quizRepo,
		ResourceRepo: resourceRepo,
		SkillRepo:    skillRepo,
		ProgressRepo: progressRepo,
		Logger:       logger,
	}
}

// CourseDetails bundles a course with its ordered lessons, resources and
// the caller's per-lesson completion map.
type CourseDetails struct {
	Course           model.Course     `json:"course"`
	Lessons          []model.Lesson   `json:"lessons"`
	Resources        []model.Resource `json:"resources"`
	Progress         *model.Progress  `json:"progress,omitempty"`
	CompletedLessons map[string]bool  `json:"completedLessons,omitempty"`
}

func (s *CourseService) GetDetails(ctx context.Context, courseID, userID string) (*CourseDetails, error) {
	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	lessons, err := s.LessonRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	resources, err := s.ResourceRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	details := &CourseDetails{Course: *course, Lessons: lessons, Resources: resources}
	if userID != "" {
		progress, err := s.ProgressRepo.FindByKey(ctx, userID, model.ProgressKey{CourseID: courseID})
		if err == nil {
			details.Progress = progress
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		completed, err := s.ProgressRepo.CompletedLessonIDs(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		details.CompletedLessons = completed
	}
	return details, nil
}

func (s *CourseService) GetLesson(ctx context.Context, lessonID string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(ctx, lessonID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

// Create checks the parent skill exists before inserting the course.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	if _, err := s.SkillRepo.FindByID(ctx, course.SkillID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrSkillNotFound
		}
		return err
	}
	return s.CourseRepo.Create(ctx, course)
}

func (s *CourseService) Update(ctx context.Context, id string, update model.CourseUpdate) (*model.Course, error) {
	if err := s.CourseRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.CourseRepo.FindByID(ctx, id)
}

// Delete removes the course and its owned lessons and resources.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	lessons, err := s.LessonRepo.FindByCourse(ctx, id)
	if err != nil {
		return err
	}
	for _, lesson := range lessons {
		if err := s.LessonRepo.Delete(ctx, lesson.ID.Hex()); err != nil {
			return err
		}
	}
	if err := s.ResourceRepo.DeleteByCourse(ctx, id); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrCourseNotFound
		}
		return err
	}
	s.Logger.Info("course deleted", zap.String("courseId", id), zap.Int("lessons", len(lessons)))
	return nil
}

// CreateLesson inserts the lesson and registers it on the parent course.
func (s *CourseService) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if _, err := s.CourseRepo.FindByID(ctx, lesson.CourseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if err := s.LessonRepo.Create(ctx, lesson); err != nil {
		return err
	}
	return s.CourseRepo.AddRef(ctx, lesson.CourseID, "lessons", lesson.ID.Hex())
}

func (s *CourseService) UpdateLesson(ctx context.Context, id string, update model.LessonUpdate) (*model.Lesson, error) {
	if err := s.LessonRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return s.LessonRepo.FindByID(ctx, id)
}

func (s *CourseService) DeleteLesson(ctx context.Context, id string) error {
	lesson, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrLessonNotFound
		}
		return err
	}
	if err := s.LessonRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.CourseRepo.RemoveRef(ctx, lesson.CourseID, "lessons", id)
}

func (s *CourseService) AddResource(ctx context.Context, res *model.Resource) error {
	if _, err := s.CourseRepo.FindByID(ctx, res.CourseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if err := s.ResourceRepo.Create(ctx, res); err != nil {
		return err
	}
	return s.CourseRepo.AddRef(ctx, res.CourseID, "resources", res.ID.Hex())
}

func (s *CourseService) DeleteResource(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return util.ErrResourceNotFound
	}
	res, err := s.ResourceRepo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrResourceNotFound
		}
		return err
	}
	if err := s.ResourceRepo.Delete(ctx, oid); err != nil {
		return err
	}
	return s.CourseRepo.RemoveRef(ctx, res.CourseID, "resources", id)
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.CourseRepo.FindAll(ctx)
}
