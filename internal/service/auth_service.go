package service

import (
	"context"
	"errors"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	_, err := s.UserRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.UserRepo.Create(ctx, user)
}

// Login returns a signed token. Unknown email and wrong password produce
// the same error so the response does not leak which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
