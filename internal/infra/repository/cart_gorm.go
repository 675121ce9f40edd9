package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) ListItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	var items []model.CartItem

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("join carts on carts.id = cart_items.cart_id").
		Where("carts.user_id = ? AND carts.status = ?", userID, model.CartStatusActive).
		Order("cart_items.id asc").
		Find(&items).Error
	if err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// ReplaceItems overwrites the ACTIVE cart's items, creating the cart if needed.
func (r *CartGormRepository) ReplaceItems(ctx context.Context, userID string, items []model.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := activeCart(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		now := time.Now()
		rows := make([]model.CartItem, 0, len(items))
		for _, it := range items {
			rows = append(rows, model.CartItem{
				CartID:    cart.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		return tx.Create(&rows).Error
	})
}

// ClearByUserID deletes the ACTIVE cart's items. No cart means nothing to clear.
func (r *CartGormRepository) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	var cleared int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		err := tx.Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
			Order("id desc").
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		cleared = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

// find the ACTIVE cart or create it
func activeCart(tx *gorm.DB, userID string) (model.Cart, error) {
	var cart model.Cart

	findErr := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
		Order("id desc").
		First(&cart).Error
	if findErr == nil {
		return cart, nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return model.Cart{}, findErr
	}

	now := time.Now()
	cart = model.Cart{
		UserID:    userID,
		Status:    model.CartStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.Create(&cart).Error; err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}
