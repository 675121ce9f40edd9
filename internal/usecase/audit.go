package usecase

import (
	"encoding/json"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

func snapshotJSON(v map[string]interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orderAudit(actor string, action model.AuditAction, orderID string, before, after map[string]interface{}, at time.Time) model.AuditLog {
	return model.AuditLog{
		ActorID:      actor,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   snapshotJSON(before),
		AfterJSON:    snapshotJSON(after),
		CreatedAt:    at,
	}
}
