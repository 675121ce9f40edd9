package repository

import (
	"context"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

type AuditLogFilter struct {
	ActorID     *string
	Action      *model.AuditAction
	ResourceID  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// Normalize clamps paging: 50 by default, at most 200.
func (f AuditLogFilter) Normalize() AuditLogFilter {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
