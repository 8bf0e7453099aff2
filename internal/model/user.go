package model

import "time"

// User 用户（鉴权由上游中间件完成，这里只保留账户与留卡信息）
type User struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username         string    `json:"username" gorm:"type:varchar(32);uniqueIndex;not null"`
	Email            string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password         string    `json:"-" gorm:"type:varchar(100);not null"`
	Age              int       `json:"age"`
	StripeCustomerID string    `json:"-" gorm:"type:varchar(64)"` // 留卡后网关侧的客户标识
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
