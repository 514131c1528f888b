package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"charity-fund-api/internal/core/cache"
	"charity-fund-api/internal/domain"
	"charity-fund-api/internal/repo"
	"charity-fund-api/pkg/utils"
)

// 单个活动详情的缓存；写路径（改/删/捐）负责失效
const campaignCacheTTL = 30 * time.Second

func campaignCacheKey(id string) string { return "campaign:" + id }

type CampaignService struct {
	campaigns *repo.CampaignRepo
	cache     *cache.Cache // 可为 nil（未配置 redis）
	log       *zap.Logger
}

func NewCampaignService(campaigns *repo.CampaignRepo, c *cache.Cache, log *zap.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, cache: c, log: log}
}

// CampaignInput 创建活动的字段
type CampaignInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	GoalAmount  decimal.Decimal `json:"goalAmount"`
	EndDate     time.Time       `json:"endDate"`
	Image       string          `json:"image"`
}

// CampaignPatch 部分更新；nil 字段不动
type CampaignPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	GoalAmount  *decimal.Decimal `json:"goalAmount"`
	EndDate     *time.Time       `json:"endDate"`
	Image       *string          `json:"image"`
}

func (s *CampaignService) Create(ctx context.Context, ownerID string, in CampaignInput) (*domain.CampaignView, error) {
	c := &domain.Campaign{
		ID:            utils.NewID(),
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		GoalAmount:    in.GoalAmount,
		CurrentAmount: decimal.Zero,
		EndDate:       in.EndDate,
		CreatedBy:     ownerID,
		Status:        domain.CampaignActive,
		Image:         in.Image,
	}
	if c.Image == "" {
		c.Image = domain.DefaultCampaignImage
	}
	if err := c.Validate(); err != nil {
		return nil, BadRequest(err.Error())
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c.View(), nil
}

func (s *CampaignService) ListActive(ctx context.Context) ([]*domain.CampaignView, error) {
	list, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return views(list), nil
}

func (s *CampaignService) ListMine(ctx context.Context, ownerID string) ([]*domain.CampaignView, error) {
	list, err := s.campaigns.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return views(list), nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.CampaignView, error) {
	if s.cache != nil {
		v, err := cache.ReadThrough[domain.CampaignView](s.cache, ctx, campaignCacheKey(id), campaignCacheTTL,
			func(ctx context.Context) (*domain.CampaignView, error) { return s.load(ctx, id) })
		if err == nil {
			return v, nil
		}
		// 缓存链路出错直接回源，不影响读
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		s.log.Warn("campaign cache bypass", zap.String("id", id), zap.Error(err))
	}
	return s.load(ctx, id)
}

func (s *CampaignService) load(ctx context.Context, id string) (*domain.CampaignView, error) {
	c, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NotFound("Campaign not found")
	}
	return c.View(), nil
}

func (s *CampaignService) Update(ctx context.Context, requesterID, requesterRole, id string, patch CampaignPatch) (*domain.CampaignView, error) {
	c, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, NotFound("Campaign not found")
	}
	if c.CreatedBy != requesterID && requesterRole != domain.RoleAdmin {
		return nil, Forbidden("Not authorized to update this campaign")
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Category != nil {
		c.Category = *patch.Category
	}
	if patch.GoalAmount != nil {
		c.GoalAmount = *patch.GoalAmount
	}
	if patch.EndDate != nil {
		c.EndDate = *patch.EndDate
	}
	if patch.Image != nil {
		c.Image = *patch.Image
	}
	if err := c.Validate(); err != nil {
		return nil, BadRequest(err.Error())
	}
	if err := s.campaigns.Save(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return c.View(), nil
}

func (s *CampaignService) Delete(ctx context.Context, requesterID, requesterRole, id string) error {
	c, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return NotFound("Campaign not found")
	}
	if c.CreatedBy != requesterID && requesterRole != domain.RoleAdmin {
		return Forbidden("Not authorized to delete this campaign")
	}
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CampaignService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, campaignCacheKey(id))
	}
}

func views(list []domain.Campaign) []*domain.CampaignView {
	out := make([]*domain.CampaignView, 0, len(list))
	for i := range list {
		out = append(out, list[i].View())
	}
	return out
}
