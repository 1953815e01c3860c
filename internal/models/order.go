package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	TenantID        uint           `gorm:"index:idx_order_tenant;not null" json:"tenant_id"`
	OrderNo         string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	Status          string         `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	ChannelID       *uint          `gorm:"index" json:"channel_id"`        // 直接归属渠道
	LeadID          *uint          `gorm:"index" json:"lead_id"`           // 来源线索（渠道归属兜底）
	CooperationMode string         `gorm:"type:varchar(32)" json:"cooperation_mode"` // 订单级合作模式覆盖，空则继承渠道
	CustomerName    string         `gorm:"type:varchar(64)" json:"customer_name"`
	PaidAt          *time.Time     `json:"paid_at"`
	CompletedAt     *time.Time     `json:"completed_at"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
