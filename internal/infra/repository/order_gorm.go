package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// Create inserts the order and its items in one statement group.
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (string, error) {
	if order.Version == 0 {
		order.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("id = ?", orderID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	f = f.Normalize()

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var orders []model.Order
	offset := (f.Page - 1) * f.Limit
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("created_at desc").
		Order("id desc").
		Limit(f.Limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, 0, err
	}
	return orders, total, nil
}

// Update is a compare-and-swap on (id, version).
func (r *OrderGormRepository) Update(ctx context.Context, orderID string, expectedVersion int64, patch repo.OrderPatch) (model.Order, error) {
	updates := map[string]interface{}{
		"version":    expectedVersion + 1,
		"updated_at": time.Now(),
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.IsPaid != nil {
		updates["is_paid"] = *patch.IsPaid
	}

	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND version = ?", orderID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return model.Order{}, res.Error
	}

	if res.RowsAffected == 0 {
		//missing row or stale version
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return model.Order{}, err
		}
		if count == 0 {
			return model.Order{}, repo.ErrNotFound
		}
		return model.Order{}, repo.ErrVersionConflict
	}

	return r.FindByID(ctx, orderID)
}

// Delete removes the order and its items.
func (r *OrderGormRepository) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//items first, order_items references orders
		if err := tx.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", orderID).Delete(&model.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
