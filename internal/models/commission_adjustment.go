package models

import "time"

// CommissionAdjustment 佣金调整记录（退款冲销）
type CommissionAdjustment struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	TenantID             uint      `gorm:"index;not null" json:"tenant_id"`
	ChannelID            uint      `gorm:"index;not null" json:"channel_id"`
	OriginalCommissionID uint      `gorm:"index:idx_adjustment_commission;not null" json:"original_commission_id"`
	OrderID              uint      `gorm:"index;not null" json:"order_id"`
	AdjustmentType       string    `gorm:"type:varchar(32);not null" json:"adjustment_type"`                   // PARTIAL_REFUND / FULL_REFUND
	AdjustmentAmount     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"adjustment_amount"`     // 调整金额（负数）
	RefundAmount         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`         // 本次退款金额
	Reason               string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName 指定表名
func (CommissionAdjustment) TableName() string {
	return "commission_adjustments"
}
