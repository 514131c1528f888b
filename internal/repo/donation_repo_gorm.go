package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"charity-fund-api/internal/domain"
)

type DonationRepo struct{ db *gorm.DB }

func NewDonationRepo(db *gorm.DB) *DonationRepo { return &DonationRepo{db: db} }

func (r *DonationRepo) WithTx(tx *gorm.DB) *DonationRepo { return &DonationRepo{db: tx} }

func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// ListByDonor 我的捐赠，附注活动摘要，倒序
func (r *DonationRepo) ListByDonor(ctx context.Context, donorID string) ([]domain.Donation, error) {
	var out []domain.Donation
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Preload("Campaign").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListPublicByCampaign 活动公开墙：只取非匿名，最多 limit 条
func (r *DonationRepo) ListPublicByCampaign(ctx context.Context, campaignID string, limit int) ([]domain.Donation, error) {
	var out []domain.Donation
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND is_anonymous = ?", campaignID, false).
		Preload("Donor").
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// SumByDonor 累计捐出金额，没捐过算 0
func (r *DonationRepo) SumByDonor(ctx context.Context, donorID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&domain.Donation{}).
		Where("donor_id = ?", donorID).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// CountDistinctCampaigns 支持过的活动数（去重）
func (r *DonationRepo) CountDistinctCampaigns(ctx context.Context, donorID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Donation{}).
		Where("donor_id = ?", donorID).
		Distinct("campaign_id").
		Count(&n).Error
	return n, err
}
