package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"charity-fund-api/internal/domain"
)

type CampaignRepo struct{ db *gorm.DB }

func NewCampaignRepo(db *gorm.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func (r *CampaignRepo) WithTx(tx *gorm.DB) *CampaignRepo { return &CampaignRepo{db: tx} }

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CampaignRepo) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var c domain.Campaign
	err := r.db.WithContext(ctx).Preload("Creator").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

// ListActive 公开列表：只看 active，按创建时间倒序；契约里没有分页
func (r *CampaignRepo) ListActive(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.CampaignActive).
		Preload("Creator").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListByOwner 我的活动：不过滤状态
func (r *CampaignRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := r.db.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// Save 整行落库；Creator 只是附注，绝不顺带写 users 表
func (r *CampaignRepo) Save(ctx context.Context, c *domain.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

// Delete 只删活动本身，捐赠记录保留（不级联）
func (r *CampaignRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Campaign{}).Error
}
