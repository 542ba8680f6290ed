package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:50" binding:"required"`
}

type Product struct {
	gorm.Model
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description" binding:"required"`
	CategoryID  uint             `json:"categoryId" binding:"required"`
	Category    Category         `json:"category"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)"`
	OldPrice    *decimal.Decimal `json:"oldPrice" gorm:"type:decimal(10,2)"`
	Stock       int              `json:"stock"`
	Active      bool             `json:"active" gorm:"default:true"`
	Attributes  datatypes.JSON   `json:"attributes"`
	Images      []ProductImage   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}
