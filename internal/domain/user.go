package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 金额字段统一走 decimal；线上契约是裸数字，不能带引号
func init() { decimal.MarshalJSONWithoutQuotes = true }

// 角色枚举
const (
	RoleDonor      = "donor"
	RoleFundraiser = "fundraiser"
	RoleAdmin      = "admin"
)

// User 身份 + 模拟钱包
type User struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Name         string          `gorm:"size:64;not null" json:"name"`
	Email        string          `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string          `gorm:"size:100;not null" json:"-"`
	Role         string          `gorm:"size:16;not null;default:donor" json:"role"`
	Balance      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// ValidRole 注册时只允许 donor / fundraiser，admin 走运维通道
func ValidRole(r string) bool { return r == RoleDonor || r == RoleFundraiser }

// UserRef 附注在活动/捐赠上的用户摘要
type UserRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Ref 完整摘要（含邮箱）
func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// PublicRef 公开捐赠列表只露名字
func (u *User) PublicRef() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name}
}
