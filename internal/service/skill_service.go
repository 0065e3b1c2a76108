package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	skillCatalogKey = "skillforge:catalog:skills"
	skillCatalogTTL = 5 * time.Minute
)

type SkillService struct {
	SkillRepo    *repository.SkillRepository
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	USPRepo      *repository.UserSkillProgressRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
	Logger       *zap.Logger
}

func NewSkillService(
	skillRepo *repository.SkillRepository,
	courseRepo *repository.CourseRepository,
	quizRepo *repository.QuizRepository,
	uspRepo *repository.UserSkillProgressRepository,
	progressRepo *repository.ProgressRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *SkillService {
	return &SkillService{
		SkillRepo:    skillRepo,
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		USPRepo:      uspRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
		Logger:       logger,
	}
}

// EnrolledSkill pairs a catalog skill with the caller's progress in it.
type EnrolledSkill struct {
	Skill    model.Skill              `json:"skill"`
	Progress *model.UserSkillProgress `json:"progress,omitempty"`
}

// AvailableSkills returns global catalog skills the user has not enrolled
// in yet. The catalog read goes through a short redis cache; enrollment
// filtering is always live.
func (s *SkillService) AvailableSkills(ctx context.Context, userID string) ([]model.Skill, error) {
	skills, err := s.catalogSkills(ctx)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.USPRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[string]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.SkillID] = true
	}

	available := make([]model.Skill, 0, len(skills))
	for _, skill := range skills {
		if !enrolled[skill.ID.Hex()] {
			available = append(available, skill)
		}
	}
	return available, nil
}

func (s *SkillService) catalogSkills(ctx context.Context) ([]model.Skill, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, skillCatalogKey).Result()
		if err == nil {
			var skills []model.Skill
			if jsonErr := json.Unmarshal([]byte(val), &skills); jsonErr == nil {
				return skills, nil
			}
		} else if err != redis.Nil {
			s.Logger.Warn("skill catalog cache read failed", zap.Error(err))
		}
	}

	skills, err := s.SkillRepo.FindGlobal(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(skills); err == nil {
			if err := s.Redis.Set(ctx, skillCatalogKey, data, skillCatalogTTL).Err(); err != nil {
				s.Logger.Warn("skill catalog cache write failed", zap.Error(err))
			}
		}
	}
	return skills, nil
}

func (s *SkillService) invalidateCatalog(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, skillCatalogKey).Err(); err != nil {
		s.Logger.Warn("skill catalog cache invalidation failed", zap.Error(err))
	}
}

// EnrolledSkills returns the user's enrollments joined with their skill
// records. Enrollments whose skill was deleted are skipped.
func (s *SkillService) EnrolledSkills(ctx context.Context, userID string) ([]EnrolledSkill, error) {
	enrollments, err := s.USPRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]EnrolledSkill, 0, len(enrollments))
	for i := range enrollments {
		e := enrollments[i]
		skill, err := s.SkillRepo.FindByID(ctx, e.SkillID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, err
		}
		result = append(result, EnrolledSkill{Skill: *skill, Progress: &e})
	}
	return result, nil
}

// SkillDetails bundles a skill with its courses, capstone quizzes and,
// when the caller is enrolled, their progress record.
type SkillDetails struct {
	Skill    model.Skill              `json:"skill"`
	Courses  []model.Course           `json:"courses"`
	Quizzes  []model.Quiz             `json:"quizzes"`
	Progress *model.UserSkillProgress `json:"progress,omitempty"`
}

func (s *SkillService) GetDetails(ctx context.Context, skillID, userID string) (*SkillDetails, error) {
	skill, err := s.SkillRepo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	courses, err := s.CourseRepo.FindBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.QuizRepo.FindBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	details := &SkillDetails{Skill: *skill, Courses: courses, Quizzes: quizzes}
	if userID != "" {
		usp, err := s.USPRepo.FindByUserAndSkill(ctx, userID, skillID)
		if err == nil {
			details.Progress = usp
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}
	return details, nil
}

// Enroll creates the user's progress record for a skill. Enrolling twice
// is an error, not a reset.
func (s *SkillService) Enroll(ctx context.Context, userID, skillID string) (*model.UserSkillProgress, error) {
	skill, err := s.SkillRepo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	_, err = s.USPRepo.FindByUserAndSkill(ctx, userID, skillID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	total, err := s.CourseRepo.FindBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if len(total) == 0 {
		return nil, util.ErrSkillWithoutCourse
	}

	usp := &model.UserSkillProgress{
		UserID:       userID,
		SkillID:      skillID,
		Level:        0,
		TotalCourses: len(total),
	}
	if err := s.USPRepo.Create(ctx, usp); err != nil {
		return nil, err
	}
	s.Logger.Info("user enrolled in skill",
		zap.String("userId", userID),
		zap.String("skillId", skillID),
		zap.String("skillName", skill.Name))
	return usp, nil
}

// Unenroll removes the enrollment and every course progress record the
// user accumulated under that skill. Validations and badges survive.
func (s *SkillService) Unenroll(ctx context.Context, userID, skillID string) error {
	if err := s.USPRepo.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrNotEnrolled
		}
		return err
	}

	courses, err := s.CourseRepo.FindBySkill(ctx, skillID)
	if err != nil {
		return err
	}
	courseIDs := make([]string, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID.Hex())
	}
	if err := s.ProgressRepo.DeleteByUserAndCourses(ctx, userID, courseIDs); err != nil {
		return err
	}

	s.Logger.Info("user unenrolled from skill",
		zap.String("userId", userID),
		zap.String("skillId", skillID))
	return nil
}

func (s *SkillService) Create(ctx context.Context, skill *model.Skill) error {
	if err := s.SkillRepo.Create(ctx, skill); err != nil {
		return err
	}
	if skill.IsGlobal() {
		s.invalidateCatalog(ctx)
	}
	return nil
}

func (s *SkillService) Update(ctx context.Context, id string, update model.SkillUpdate) (*model.Skill, error) {
	if err := s.SkillRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return s.SkillRepo.FindByID(ctx, id)
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	err := s.SkillRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrSkillNotFound
	}
	if err == nil {
		s.invalidateCatalog(ctx)
	}
	return err
}

func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	return s.SkillRepo.FindAll(ctx)
}
