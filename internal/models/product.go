package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品（课程/服务）
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	TenantID     uint           `gorm:"index:idx_product_tenant;not null" json:"tenant_id"`
	Name         string         `gorm:"type:varchar(128);not null" json:"name"`
	Price        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 标准售价
	ChannelPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"channel_price"` // 渠道底价（成本基准）
	Status       string         `gorm:"type:varchar(16);not null;default:'ON'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
