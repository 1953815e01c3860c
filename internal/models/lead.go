package models

import (
	"time"

	"gorm.io/gorm"
)

// Lead 线索（潜在客户，可能由渠道引流）
type Lead struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"index:idx_lead_tenant;not null" json:"tenant_id"`
	Name      string         `gorm:"type:varchar(64)" json:"name"`
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`
	ChannelID *uint          `gorm:"index" json:"channel_id"` // 引流渠道，可为空
	Source    string         `gorm:"type:varchar(32)" json:"source"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Lead) TableName() string {
	return "leads"
}
