package mongostore

import (
	"context"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AuditLogRepository struct {
	coll    *mongo.Collection
	session mongo.Session
}

func NewAuditLogRepository(db *mongo.Database) *AuditLogRepository {
	return &AuditLogRepository{coll: db.Collection(auditLogsCollection)}
}

func (r *AuditLogRepository) Create(ctx context.Context, log model.AuditLog) error {
	_, err := r.coll.InsertOne(withSession(ctx, r.session), log)
	return err
}

func (r *AuditLogRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	ctx = withSession(ctx, r.session)

	q := bson.M{}
	if filter.ActorID != nil {
		q["actor_id"] = *filter.ActorID
	}
	if filter.Action != nil {
		q["action"] = string(*filter.Action)
	}
	if filter.ResourceID != nil {
		q["resource_id"] = *filter.ResourceID
	}
	created := bson.M{}
	if filter.CreatedFrom != nil {
		created["$gte"] = *filter.CreatedFrom
	}
	if filter.CreatedTo != nil {
		created["$lte"] = *filter.CreatedTo
	}
	if len(created) > 0 {
		q["created_at"] = created
	}

	filter = filter.Normalize()

	//newest first; ObjectIDs grow with insertion time
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	var logs []model.AuditLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
