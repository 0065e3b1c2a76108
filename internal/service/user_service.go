package service

import (
	"context"
	"errors"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.FindAll(ctx)
}

// UpdateProfile applies a partial edit. A new email must not collide with
// another account; a new password is hashed before it is stored.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	if update.Email != nil {
		existing, err := s.UserRepo.FindByEmail(ctx, *update.Email)
		if err == nil && existing.ID.Hex() != id {
			return nil, util.ErrEmailRegistered
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hashed)
		update.Password = &h
	}

	if err := s.UserRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.UserRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrUserNotFound
	}
	return err
}
