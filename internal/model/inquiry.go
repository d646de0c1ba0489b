package model

import "time"

// Inquiry 상담 신청，对应 contact_inquiries
// 字段名与既有数据一致，不可更改
type Inquiry struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"             json:"id"`
	DesiredCourse string    `gorm:"column:desired_course;type:varchar(100);not null" json:"desired_course"`
	Education     string    `gorm:"column:education;type:varchar(50);not null"      json:"education"`
	Name          string    `gorm:"column:name;type:varchar(100);not null"          json:"name"`
	Contact       string    `gorm:"column:contact;type:varchar(20);not null"        json:"contact"`
	SpecialNotes  string    `gorm:"column:special_notes;type:text;not null"         json:"special_notes"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;<-:create"            json:"created_at"`
}

// TableName 指定表名
func (Inquiry) TableName() string { return "contact_inquiries" }
