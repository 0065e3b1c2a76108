package service

import (
	"context"
	"errors"
	"fmt"

	"skillforge_backend/internal/event"
	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"
	"skillforge_backend/pkg/monitoring"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ValidationService struct {
	SkillRepo     *repository.SkillRepository
	BadgeRepo     *repository.BadgeRepository
	USPRepo       *repository.UserSkillProgressRepository
	ProgressRepo  *repository.ProgressRepository
	ValidatedRepo *repository.ValidatedSkillRepository
	Notifier      *NotificationService
	Events        *event.Publisher
	Logger        *zap.Logger
}

func NewValidationService(
	skillRepo *repository.SkillRepository,
	badgeRepo *repository.BadgeRepository,
	uspRepo *repository.UserSkillProgressRepository,
	progressRepo *repository.ProgressRepository,
	validatedRepo *repository.ValidatedSkillRepository,
	notifier *NotificationService,
	events *event.Publisher,
	logger *zap.Logger,
) *ValidationService {
	return &ValidationService{
		SkillRepo:     skillRepo,
		BadgeRepo:     badgeRepo,
		USPRepo:       uspRepo,
		ProgressRepo:  progressRepo,
		ValidatedRepo: validatedRepo,
		Notifier:      notifier,
		Events:        events,
		Logger:        logger,
	}
}

// AchievementStats is the snapshot of user aggregates a badge condition is
// evaluated against.
type AchievementStats struct {
	QuizPercentage   int
	SkillsCompleted  int
	CoursesCompleted int
}

// EvaluateCondition decides whether a single condition holds for the given
// snapshot. Custom conditions never unlock.
func EvaluateCondition(cond model.BadgeCondition, stats AchievementStats) bool {
	switch c := cond.(type) {
	case model.QuizScoreCondition:
		return stats.QuizPercentage >= c.Value
	case model.CompleteSkillsCondition:
		return stats.SkillsCompleted >= c.Value
	case model.CompleteCoursesCondition:
		return stats.CoursesCompleted >= c.Value
	case model.CustomCondition:
		return false
	default:
		return false
	}
}

// ValidationResult is what a passing quiz submission reports back.
type ValidationResult struct {
	SkillValidated bool          `json:"skillValidated"`
	SkillName      string        `json:"skillName"`
	BadgesUnlocked []model.Badge `json:"badgesUnlocked"`
}

// ValidateSkill runs the full validation chain for a passed skill quiz:
// pin the skill level to 100, evaluate the skill's badges plus the
// catalog-wide ones against fresh aggregates, claim newly qualifying
// ones, and merge the durable ValidatedSkill record. Badges already held
// are skipped; only badges unlocked by this call are returned.
func (s *ValidationService) ValidateSkill(ctx context.Context, userID, skillID string, quizPercentage int) (*ValidationResult, error) {
	skill, err := s.SkillRepo.FindByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrSkillNotFound
		}
		return nil, err
	}

	// Level first, so this skill counts toward complete_skills conditions.
	if err := s.USPRepo.ForceLevel(ctx, userID, skillID, 100); err != nil {
		monitoring.SkillValidations.WithLabelValues("error").Inc()
		return nil, err
	}

	skillsCompleted, err := s.USPRepo.CountCompletedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	coursesCompleted, err := s.ProgressRepo.CountCompletedCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := AchievementStats{
		QuizPercentage:   quizPercentage,
		SkillsCompleted:  skillsCompleted,
		CoursesCompleted: coursesCompleted,
	}

	badges, err := s.BadgeRepo.FindForSkill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	var unlocked []model.Badge
	var unlockedIDs []string
	for _, badge := range badges {
		if badge.Condition == nil {
			continue
		}
		cond, err := badge.Condition.Decode()
		if err != nil {
			s.Logger.Warn("badge has malformed condition",
				zap.String("badgeId", badge.ID.Hex()), zap.Error(err))
			continue
		}
		if !EvaluateCondition(cond, stats) {
			continue
		}

		held, err := s.BadgeRepo.HasClaim(ctx, userID, badge.ID.Hex())
		if err != nil {
			return nil, err
		}
		if held {
			continue
		}
		if _, err := s.BadgeRepo.CreateClaim(ctx, userID, badge.ID.Hex()); err != nil {
			return nil, err
		}

		unlocked = append(unlocked, badge)
		unlockedIDs = append(unlockedIDs, badge.ID.Hex())
		monitoring.BadgeUnlocks.Inc()
		s.Events.Publish(event.BadgeUnlocked, map[string]string{
			"userId":  userID,
			"badgeId": badge.ID.Hex(),
			"title":   badge.Title,
		})
		s.Notifier.notifyAchievement(ctx, userID,
			fmt.Sprintf("Badge unlocked: %s", badge.Title), badge.ID.Hex())
	}

	if err := s.ValidatedRepo.UpsertMerge(ctx, userID, skillID, skill.Name, quizPercentage, unlockedIDs); err != nil {
		monitoring.SkillValidations.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.SkillValidations.WithLabelValues("validated").Inc()
	s.Events.Publish(event.SkillValidated, map[string]interface{}{
		"userId":    userID,
		"skillId":   skillID,
		"skillName": skill.Name,
		"quizScore": quizPercentage,
	})
	s.Notifier.notifyAchievement(ctx, userID,
		fmt.Sprintf("Skill validated: %s", skill.Name), skillID)

	s.Logger.Info("skill validated",
		zap.String("userId", userID),
		zap.String("skillId", skillID),
		zap.Int("quizScore", quizPercentage),
		zap.Int("badgesUnlocked", len(unlocked)))

	return &ValidationResult{
		SkillValidated: true,
		SkillName:      skill.Name,
		BadgesUnlocked: unlocked,
	}, nil
}

// ValidatedSkills lists the user's durable mastery records.
func (s *ValidationService) ValidatedSkills(ctx context.Context, userID string) ([]model.ValidatedSkill, error) {
	return s.ValidatedRepo.FindByUser(ctx, userID)
}

// AllValidatedSkills is the admin overview.
func (s *ValidationService) AllValidatedSkills(ctx context.Context) ([]model.ValidatedSkill, error) {
	return s.ValidatedRepo.FindAll(ctx)
}
