package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// 捐赠状态；没有异步清算，默认即 completed
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// MaxDonationMessageLen 留言长度上限
const MaxDonationMessageLen = 500

// Donation 一次捐赠事件，写入后不可变
type Donation struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CampaignID  string          `gorm:"size:36;not null;index" json:"campaignId"`
	DonorID     string          `gorm:"size:36;not null;index" json:"donorId"`
	Message     string          `gorm:"size:500" json:"message,omitempty"`
	IsAnonymous bool            `gorm:"not null;default:false" json:"isAnonymous"`
	Status      string          `gorm:"size:16;not null;default:completed" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`

	Campaign *Campaign `gorm:"foreignKey:CampaignID;references:ID" json:"-"`
	Donor    *User     `gorm:"foreignKey:DonorID;references:ID" json:"-"`
}

func (Donation) TableName() string { return "donations" }

// DonationView 对外视图；Campaign/Donor 按场景选择性附注
type DonationView struct {
	Donation
	Campaign *CampaignRef `json:"campaign,omitempty"`
	Donor    *UserRef     `json:"donor,omitempty"`
}
