package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChannelCommission 渠道佣金记录
type ChannelCommission struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TenantID       uint            `gorm:"index:idx_commission_tenant_order;not null" json:"tenant_id"`
	ChannelID      uint            `gorm:"index;not null" json:"channel_id"`
	OrderID        uint            `gorm:"index:idx_commission_tenant_order;not null" json:"order_id"`
	LeadID         *uint           `gorm:"index" json:"lead_id"`
	CommissionNo   string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"commission_no"`
	CommissionType string          `gorm:"type:varchar(32);not null" json:"commission_type"`              // 生效的合作模式快照
	OrderAmount    Money           `gorm:"type:decimal(20,2);not null;default:0" json:"order_amount"`     // 订单金额快照
	CommissionRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"commission_rate"`  // 生效费率（底价模式为 0）
	Amount         Money           `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`           // 佣金金额
	Status         string          `gorm:"type:varchar(16);index;not null;default:'PENDING'" json:"status"`
	Formula        string          `gorm:"type:text" json:"formula"` // 计算过程 JSON
	Remark         string          `gorm:"type:varchar(255)" json:"remark"`
	SettledAt      *time.Time      `json:"settled_at"`
	PaidAt         *time.Time      `json:"paid_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName 指定表名
func (ChannelCommission) TableName() string {
	return "channel_commissions"
}
