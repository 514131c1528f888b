package domain

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// 活动状态
const (
	CampaignActive    = "active"
	CampaignCompleted = "completed"
	CampaignExpired   = "expired"
)

// DefaultCampaignImage 未传图片时的占位图
const DefaultCampaignImage = "https://via.placeholder.com/400x300?text=Campaign"

// Categories 固定分类枚举
var Categories = []string{
	"Medical", "Education", "Environment", "Animal Welfare", "Disaster Relief", "Others",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Campaign 募捐活动
type Campaign struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Title         string          `gorm:"size:100;not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Category      string          `gorm:"size:32;not null;index" json:"category"`
	GoalAmount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"goalAmount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"currentAmount"`
	EndDate       time.Time       `gorm:"not null" json:"endDate"`
	CreatedBy     string          `gorm:"size:36;not null;index" json:"createdBy"`
	Status        string          `gorm:"size:16;not null;default:active;index" json:"status"`
	Image         string          `gorm:"size:255;not null" json:"image"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`

	Creator *User `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }

// Validate 建/改共用的字段校验
func (c *Campaign) Validate() error {
	switch {
	case c.Title == "":
		return errors.New("please add a title")
	case len(c.Title) > 100:
		return errors.New("title cannot be more than 100 characters")
	case c.Description == "":
		return errors.New("please add a description")
	case !ValidCategory(c.Category):
		return errors.New("please add a valid category")
	case !c.GoalAmount.IsPositive():
		return errors.New("goal amount must be greater than 0")
	case c.EndDate.IsZero():
		return errors.New("please add an end date")
	}
	return nil
}

// ProgressPercentage 读取时计算，不落库；封顶 100
func (c *Campaign) ProgressPercentage() int {
	if !c.GoalAmount.IsPositive() {
		return 0
	}
	pct := c.CurrentAmount.Div(c.GoalAmount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		pct = 100
	}
	return int(pct)
}

func (c *Campaign) DaysRemaining() int { return c.DaysRemainingAt(time.Now()) }

// DaysRemainingAt 截止前按天向上取整，过期后恒为 0
func (c *Campaign) DaysRemainingAt(now time.Time) int {
	days := int(math.Ceil(c.EndDate.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// CampaignRef 附注在捐赠记录上的活动摘要
type CampaignRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// CampaignView 对外视图：存储字段 + 派生字段 + 创建者摘要
type CampaignView struct {
	Campaign
	ProgressPercentage int      `json:"progressPercentage"`
	DaysRemaining      int      `json:"daysRemaining"`
	Creator            *UserRef `json:"creator,omitempty"`
}

func (c *Campaign) View() *CampaignView {
	return &CampaignView{
		Campaign:           *c,
		ProgressPercentage: c.ProgressPercentage(),
		DaysRemaining:      c.DaysRemaining(),
		Creator:            c.Creator.Ref(),
	}
}
