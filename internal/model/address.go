package model

import "time"

// 地址类型
const (
	AddressTypeShipping = "S"
	AddressTypeBilling  = "B"
)

// Address 收货/账单地址
// 每个 (user_id, address_type) 最多一条 default，由写入时清除旧默认保证
type Address struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index:idx_addr_user;not null"`
	Street      string    `json:"street" gorm:"type:varchar(100);not null"`
	Apartment   string    `json:"apartment" gorm:"type:varchar(100)"`
	Country     string    `json:"country" gorm:"type:varchar(2);not null"`
	Zip         string    `json:"zip" gorm:"type:varchar(16);not null"`
	AddressType string    `json:"address_type" gorm:"type:varchar(1);index:idx_addr_user_type;not null"`
	Default     bool      `json:"default" gorm:"column:is_default;not null;default:false"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Address) TableName() string { return "addresses" }

// CloneAs 按指定类型复制一条新地址（不共享行，避免改写原行）
func (a *Address) CloneAs(id, addressType string) *Address {
	return &Address{
		ID:          id,
		UserID:      a.UserID,
		Street:      a.Street,
		Apartment:   a.Apartment,
		Country:     a.Country,
		Zip:         a.Zip,
		AddressType: addressType,
	}
}
