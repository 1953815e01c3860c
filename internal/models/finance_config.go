package models

import "time"

// FinanceConfig 租户级财务配置（键值 JSON）
type FinanceConfig struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TenantID    uint      `gorm:"uniqueIndex:uk_finance_config_tenant_key;not null" json:"tenant_id"`
	ConfigKey   string    `gorm:"type:varchar(64);uniqueIndex:uk_finance_config_tenant_key;not null" json:"config_key"`
	ConfigValue string    `gorm:"type:text" json:"config_value"` // JSON 值
	Remark      string    `gorm:"type:varchar(255)" json:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (FinanceConfig) TableName() string {
	return "finance_configs"
}
