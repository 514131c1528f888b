package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"charity-fund-api/internal/domain"
	"charity-fund-api/internal/repo"
)

type UserService struct {
	users *repo.UserRepo
	log   *zap.Logger
}

func NewUserService(users *repo.UserRepo, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if u == nil {
		return decimal.Zero, NotFound("User not found")
	}
	return u.Balance, nil
}

// AddBalance 纯充值，没有真实支付通道；amount 必须为正
func (s *UserService) AddBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, BadRequest("Please provide a valid amount")
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if u == nil {
		return decimal.Zero, NotFound("User not found")
	}
	if err := s.users.AddBalance(ctx, userID, amount); err != nil {
		return decimal.Zero, err
	}
	s.log.Info("balance topped up", zap.String("user_id", userID), zap.String("amount", amount.String()))
	return u.Balance.Add(amount), nil
}

// PublicProfile 公开资料；密码散列在模型上就是 json:"-"，不会出去
func (s *UserService) PublicProfile(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NotFound("User not found")
	}
	return u, nil
}
