package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"charity-fund-api/internal/core/cache"
	"charity-fund-api/internal/domain"
	"charity-fund-api/internal/repo"
	"charity-fund-api/pkg/utils"
)

// 公开捐赠墙最多取最近 10 条
const publicDonationLimit = 10

type DonationService struct {
	db        *gorm.DB
	donations *repo.DonationRepo
	campaigns *repo.CampaignRepo
	users     *repo.UserRepo
	cache     *cache.Cache
	log       *zap.Logger
}

func NewDonationService(db *gorm.DB, donations *repo.DonationRepo, campaigns *repo.CampaignRepo, users *repo.UserRepo, c *cache.Cache, log *zap.Logger) *DonationService {
	return &DonationService{db: db, donations: donations, campaigns: campaigns, users: users, cache: c, log: log}
}

type DonationInput struct {
	CampaignID  string          `json:"campaignId"`
	Amount      decimal.Decimal `json:"amount"`
	Message     string          `json:"message"`
	IsAnonymous bool            `json:"isAnonymous"`
}

// DonationStats 单个捐赠人的汇总
type DonationStats struct {
	TotalDonated       decimal.Decimal `json:"totalDonated"`
	CampaignsSupported int64           `json:"campaignsSupported"`
}

// Create 捐赠主流程。三条记录（捐赠、活动进度、钱包）在一个事务里落库，
// 扣款是“余额足够才减”的单条原子更新，扣不动直接整体回滚。
func (s *DonationService) Create(ctx context.Context, donorID string, in DonationInput) (*domain.DonationView, decimal.Decimal, error) {
	if !in.Amount.IsPositive() {
		return nil, decimal.Zero, BadRequest("Amount must be greater than 0")
	}
	if len(in.Message) > domain.MaxDonationMessageLen {
		return nil, decimal.Zero, BadRequest("Message cannot be more than 500 characters")
	}

	var (
		view       *domain.DonationView
		newBalance decimal.Decimal
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		campaigns := s.campaigns.WithTx(tx)
		users := s.users.WithTx(tx)
		donations := s.donations.WithTx(tx)

		campaign, err := campaigns.FindByID(ctx, in.CampaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return NotFound("Campaign not found")
		}
		donor, err := users.FindByID(ctx, donorID)
		if err != nil {
			return err
		}
		if donor == nil {
			return NotFound("User not found")
		}
		// 先做一次普通比较，常见的余额不足不产生任何写入
		if donor.Balance.LessThan(in.Amount) {
			return ErrInsufficientBalance
		}

		d := &domain.Donation{
			ID:          utils.NewID(),
			Amount:      in.Amount,
			CampaignID:  campaign.ID,
			DonorID:     donor.ID,
			Message:     in.Message,
			IsAnonymous: in.IsAnonymous,
			Status:      domain.DonationCompleted,
		}
		if err := donations.Create(ctx, d); err != nil {
			return err
		}

		campaign.CurrentAmount = campaign.CurrentAmount.Add(in.Amount)
		if campaign.CurrentAmount.GreaterThanOrEqual(campaign.GoalAmount) {
			campaign.Status = domain.CampaignCompleted
		}
		if err := campaigns.Save(ctx, campaign); err != nil {
			return err
		}

		// 并发兜底：检查和扣款之间如果钱被别的请求花掉了，这里会扣不动
		ok, err := users.DebitBalance(ctx, donor.ID, in.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientBalance
		}

		newBalance = donor.Balance.Sub(in.Amount)
		view = &domain.DonationView{
			Donation: *d,
			Campaign: &domain.CampaignRef{ID: campaign.ID, Title: campaign.Title},
			Donor:    donor.Ref(),
		}
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, campaignCacheKey(in.CampaignID))
	}
	s.log.Info("donation created",
		zap.String("donation_id", view.ID),
		zap.String("campaign_id", in.CampaignID),
		zap.String("amount", in.Amount.String()),
	)
	return view, newBalance, nil
}

// ListMine 我的捐赠，附注活动标题/分类
func (s *DonationService) ListMine(ctx context.Context, donorID string) ([]*domain.DonationView, error) {
	list, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DonationView, 0, len(list))
	for i := range list {
		v := &domain.DonationView{Donation: list[i]}
		if c := list[i].Campaign; c != nil {
			v.Campaign = &domain.CampaignRef{ID: c.ID, Title: c.Title, Category: c.Category}
		}
		out = append(out, v)
	}
	return out, nil
}

// ListForCampaign 公开墙：匿名的整条不出现，捐赠人只露名字
func (s *DonationService) ListForCampaign(ctx context.Context, campaignID string) ([]*domain.DonationView, error) {
	list, err := s.donations.ListPublicByCampaign(ctx, campaignID, publicDonationLimit)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DonationView, 0, len(list))
	for i := range list {
		out = append(out, &domain.DonationView{
			Donation: list[i],
			Donor:    list[i].Donor.PublicRef(),
		})
	}
	return out, nil
}

func (s *DonationService) Stats(ctx context.Context, donorID string) (*DonationStats, error) {
	total, err := s.donations.SumByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	n, err := s.donations.CountDistinctCampaigns(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return &DonationStats{TotalDonated: total, CampaignsSupported: n}, nil
}
