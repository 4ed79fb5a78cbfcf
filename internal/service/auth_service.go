package service

import (
	"context"
	"strings"

	"booknotion-be/internal/apperror"
	"booknotion-be/internal/dto"
	"booknotion-be/internal/entity"
	"booknotion-be/internal/pkg/token"
	"booknotion-be/internal/repository/unitofwork"
	"booknotion-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
	Refresh(ctx context.Context, claims *token.Claims) (*dto.RefreshResponse, error)
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	tokenService     *token.Service
	publisherService IPublisherService
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokenService *token.Service,
	publisherService IPublisherService,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		tokenService:     tokenService,
		publisherService: publisherService,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = uow.UserRepository().FindByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, apperror.Conflict("Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.tokenService.Generate(user.Id, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message: "User registered successfully",
		Token:   signed,
		User: dto.UserDTO{
			Id:       user.Id,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundCode(apperror.CodeUserNotFound, "User not found", "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.AuthCode(apperror.CodeInvalidPassword, "Invalid password", "")
	}

	signed, err := s.tokenService.Generate(user.Id, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	// Best effort; login must not fail because the bus does.
	_ = s.publisherService.Publish(ctx, events.TopicUserLogin, map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})

	return &dto.AuthResponse{
		Message: "Login successful",
		Token:   signed,
		User: dto.UserDTO{
			Id:       user.Id,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundCode(apperror.CodeUserNotFound, "User not found", "")
	}

	return &dto.MeResponse{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *authService) Refresh(ctx context.Context, claims *token.Claims) (*dto.RefreshResponse, error) {
	signed, err := s.tokenService.Refresh(claims)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Token: signed}, nil
}
