package services

import (
	"github.com/bemenstore/bemen-api/models"
	"gorm.io/gorm"
)

// ReserveStock decrements a product's stock by qty, but only if the current
// stock still covers it. The check and the decrement are a single conditional
// UPDATE so concurrent checkouts of the same product cannot oversell.
func ReserveStock(db *gorm.DB, productID uint, qty int) error {
	if qty <= 0 {
		return validationErr("quantity must be positive")
	}

	result := db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			return ErrNotFound
		}
		return insufficientStockErr(product.Name)
	}
	return nil
}

// ReleaseStock credits qty back to a product. Unconditional; callers are
// responsible for releasing at most once per reservation (the order status
// transitions guarantee that).
func ReleaseStock(db *gorm.DB, productID uint, qty int) error {
	return db.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
