package repository

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"gorm.io/gorm"
)

// audit trail of seller and payment actions on orders
type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	if entry.ResourceType == "" {
		entry.ResourceType = model.AuditResourceOrder
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

// List returns the matching trail newest first. Rows written in the same
// instant keep insertion order through the id tiebreak.
func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	filter = filter.Normalize()

	logs := make([]model.AuditLog, 0, filter.Limit)
	err := r.db.WithContext(ctx).
		Scopes(auditMatches(filter), auditWindow(filter)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// equality filters on actor, action and order id
func auditMatches(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		where := map[string]interface{}{}
		if f.ActorID != nil {
			where["actor_id"] = *f.ActorID
		}
		if f.Action != nil {
			where["action"] = string(*f.Action)
		}
		if f.ResourceID != nil {
			where["resource_id"] = *f.ResourceID
		}
		if len(where) == 0 {
			return db
		}
		return db.Where(where)
	}
}

func auditWindow(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.CreatedFrom != nil {
			db = db.Where("created_at >= ?", *f.CreatedFrom)
		}
		if f.CreatedTo != nil {
			db = db.Where("created_at <= ?", *f.CreatedTo)
		}
		return db
	}
}
