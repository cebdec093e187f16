package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and profiles
type UserService struct {
	repo   *repository.UserRepository
	tokens *TokenIssuer
	logger *zap.Logger
	cost   int
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository, tokens *TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger, cost: bcrypt.DefaultCost}
}

// Register creates a USER account
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Nickname:     req.Nickname,
		Role:         models.RoleUser,
	}
	if u.Nickname == "" {
		u.Nickname = u.Username
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return s.repo.GetByID(ctx, u.ID)
}

// Login checks the password and issues a token
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, ExpiresAt: exp, User: u}, nil
}

// Profile returns the user's own profile
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile rewrites the editable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, p models.ProfileUpdate) (*models.User, error) {
	if err := s.repo.UpdateProfile(ctx, userID, p); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}
