package service

import (
	"context"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GoalService struct {
	GoalRepo *repository.GoalRepository
}

func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{GoalRepo: goalRepo}
}

func (s *GoalService) Create(ctx context.Context, goal *model.Goal) error {
	return s.GoalRepo.Create(ctx, goal)
}

func (s *GoalService) List(ctx context.Context, userID string) ([]model.Goal, error) {
	return s.GoalRepo.FindByUser(ctx, userID)
}

// Update edits a goal after checking the caller owns it.
func (s *GoalService) Update(ctx context.Context, id, userID string, update model.GoalUpdate) (*model.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	goal, err := s.GoalRepo.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if err := s.GoalRepo.Update(ctx, objID, update); err != nil {
		return nil, err
	}
	return s.GoalRepo.FindByID(ctx, objID)
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	goal, err := s.GoalRepo.FindByID(ctx, objID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return util.ErrPermissionDenied
	}
	return s.GoalRepo.Delete(ctx, objID)
}
