package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"charity-fund-api/internal/core/auth"
	"charity-fund-api/internal/domain"
	"charity-fund-api/internal/repo"
	"charity-fund-api/pkg/utils"
)

type AuthService struct {
	users *repo.UserRepo
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users *repo.UserRepo, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = domain.RoleDonor
	}
	switch {
	case name == "":
		return "", nil, BadRequest("Please add a name")
	case email == "" || !strings.Contains(email, "@"):
		return "", nil, BadRequest("Please add a valid email")
	case len(in.Password) < 6:
		return "", nil, BadRequest("Password must be at least 6 characters")
	case !domain.ValidRole(role):
		return "", nil, BadRequest("Role must be donor or fundraiser")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, BadRequest("Email already registered")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", nil, BadRequest("Please add a valid password")
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册撞唯一索引也按已注册处理
		if isDupKey(err) {
			return "", nil, BadRequest("Email already registered")
		}
		return "", nil, err
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return tok, u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, Unauthorized("Invalid credentials")
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	return u, nil
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动间差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
