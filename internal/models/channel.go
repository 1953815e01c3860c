package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Channel 渠道（分销合作方）
type Channel struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	TenantID              uint            `gorm:"index:idx_channel_tenant;not null" json:"tenant_id"`
	Name                  string          `gorm:"type:varchar(128);not null" json:"name"`
	ContactName           string          `gorm:"type:varchar(64)" json:"contact_name"`
	ContactPhone          string          `gorm:"type:varchar(32)" json:"contact_phone"`
	Level                 string          `gorm:"type:varchar(8);not null;default:'C'" json:"level"`                            // 渠道等级 S/A/B/C
	CooperationMode       string          `gorm:"type:varchar(32);not null;default:'COMMISSION'" json:"cooperation_mode"`       // COMMISSION / BASE_PRICE
	CommissionType        string          `gorm:"type:varchar(16);not null;default:'FIXED'" json:"commission_type"`             // FIXED / TIERED
	CommissionRate        decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"commission_rate"`                 // 基础返佣费率
	TieredRates           string          `gorm:"type:text" json:"tiered_rates"`                                                // 阶梯费率 JSON
	CommissionTriggerMode string          `gorm:"type:varchar(32);not null;default:'PAYMENT_COMPLETED'" json:"commission_trigger_mode"` // 佣金触发节点
	TotalDealAmount       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_deal_amount"`               // 累计成交额
	Status                string          `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Channel) TableName() string {
	return "channels"
}
