package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator 后台管理员，对应 operators
type Operator struct {
	OperatorID   string `gorm:"type:uuid;primaryKey"        json:"operator_id"`
	Email        string `gorm:"type:varchar(255);not null"  json:"email"`
	Name         string `gorm:"type:varchar(100);not null"  json:"name"`
	PasswordHash string `gorm:"type:varchar(255);not null"  json:"-"`
	Timestamps
}

// TableName 指定表名
func (Operator) TableName() string { return "operators" }

// BeforeCreate 未指定主键时生成 UUID
func (o *Operator) BeforeCreate(_ *gorm.DB) error {
	if o.OperatorID == "" {
		o.OperatorID = uuid.NewString()
	}
	return nil
}
