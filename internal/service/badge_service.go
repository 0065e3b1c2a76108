package service

import (
	"context"
	"errors"
	"time"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type BadgeService struct {
	BadgeRepo *repository.BadgeRepository
	Logger    *zap.Logger
}

func NewBadgeService(badgeRepo *repository.BadgeRepository, logger *zap.Logger) *BadgeService {
	return &BadgeService{BadgeRepo: badgeRepo, Logger: logger}
}

// OwnedBadge joins a claim with its badge catalog entry.
type OwnedBadge struct {
	Badge      model.Badge `json:"badge"`
	UnlockedAt time.Time   `json:"unlockedAt"`
}

func (s *BadgeService) List(ctx context.Context) ([]model.Badge, error) {
	return s.BadgeRepo.FindAll(ctx)
}

func (s *BadgeService) GetByID(ctx context.Context, id string) (*model.Badge, error) {
	badge, err := s.BadgeRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrBadgeNotFound
	}
	return badge, err
}

// UserBadges resolves the user's claims to catalog badges. A claim whose
// badge was deleted still shows up, carrying a placeholder title, so the
// trophy list never fails on a catalog edit.
func (s *BadgeService) UserBadges(ctx context.Context, userID string) ([]OwnedBadge, error) {
	claims, err := s.BadgeRepo.ClaimsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned := make([]OwnedBadge, 0, len(claims))
	for _, claim := range claims {
		badge, err := s.BadgeRepo.FindByID(ctx, claim.BadgeID)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				s.Logger.Warn("badge lookup failed",
					zap.String("badgeId", claim.BadgeID), zap.Error(err))
			}
			badge = &model.Badge{Title: util.PlaceholderName}
		}
		owned = append(owned, OwnedBadge{Badge: *badge, UnlockedAt: claim.UnlockedAt})
	}
	return owned, nil
}

func (s *BadgeService) Create(ctx context.Context, badge *model.Badge) error {
	if badge.Condition != nil {
		if _, err := badge.Condition.Decode(); err != nil {
			return err
		}
	}
	return s.BadgeRepo.Create(ctx, badge)
}

func (s *BadgeService) Update(ctx context.Context, id string, update model.BadgeUpdate) (*model.Badge, error) {
	if update.Condition != nil {
		if _, err := update.Condition.Decode(); err != nil {
			return nil, err
		}
	}
	if err := s.BadgeRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrBadgeNotFound
		}
		return nil, err
	}
	return s.BadgeRepo.FindByID(ctx, id)
}

func (s *BadgeService) Delete(ctx context.Context, id string) error {
	err := s.BadgeRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrBadgeNotFound
	}
	return err
}
