package model

import "time"

// 商品分类
const (
	CategoryShirt     = "S"
	CategorySportWear = "SW"
	CategoryOutWear   = "OW"
)

// 展示标签
const (
	LabelPrimary   = "P"
	LabelSecondary = "S"
	LabelDanger    = "D"
)

// Item 商品（目录行，创建后不可变）
type Item struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string    `json:"title" gorm:"type:varchar(100);not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Category  string    `json:"category" gorm:"type:varchar(2);index:idx_item_category;not null"`
	Label     string    `json:"label" gorm:"type:varchar(1);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Item) TableName() string { return "items" }
