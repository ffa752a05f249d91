package services

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"lenslink/internal/models"
	"lenslink/internal/repositories"
	"lenslink/utils"
)

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

type UserService struct {
	UserRepo   *repositories.UserRepository
	SigningKey string
	Tokens     *utils.Manager
}

func (s *UserService) generateTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	claims := &models.Claims{
		UserID: uint(user.ID),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	err = s.UserRepo.CreateSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.SignUpResponse, error) {
	if user.Email != "" {
		existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
		if err != nil && err != models.ErrUserNotFound {
			return models.SignUpResponse{}, err
		}
		if existing.ID != 0 {
			return models.SignUpResponse{}, models.ErrDuplicateEmail
		}
	}
	if user.Phone != "" {
		existing, err := s.UserRepo.GetUserByPhone(ctx, user.Phone)
		if err != nil && err != models.ErrUserNotFound {
			return models.SignUpResponse{}, err
		}
		if existing.ID != 0 {
			return models.SignUpResponse{}, models.ErrDuplicatePhone
		}
	}
	if user.Role == "" || user.Role == models.RoleAdmin {
		user.Role = models.RoleClient
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	user.Password = string(hashed)

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	tokens, err := s.generateTokens(ctx, created)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	return models.SignUpResponse{User: created, Tokens: tokens}, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignUpResponse, error) {
	var user models.User
	var err error
	switch {
	case req.Email != "":
		user, err = s.UserRepo.GetUserByEmail(ctx, req.Email)
	case req.Phone != "":
		user, err = s.UserRepo.GetUserByPhone(ctx, req.Phone)
	default:
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}
	if err == models.ErrUserNotFound {
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignUpResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}
	user.Password = ""

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	return models.SignUpResponse{User: user, Tokens: tokens}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return s.UserRepo.UpdateUser(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.UserRepo.DeleteSession(ctx, id); err != nil {
		return err
	}
	return s.UserRepo.DeleteUser(ctx, id)
}
