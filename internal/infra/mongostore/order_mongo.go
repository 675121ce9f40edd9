package mongostore

import (
	"context"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	repo "github.com/Raviram02/HostelBite/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Orders are stored as one document with their items embedded.
type OrderRepository struct {
	coll    *mongo.Collection
	session mongo.Session
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

func (r *OrderRepository) Create(ctx context.Context, order model.Order) (string, error) {
	if order.Version == 0 {
		order.Version = 1
	}
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	if _, err := r.coll.InsertOne(withSession(ctx, r.session), order); err != nil {
		return "", err
	}
	return order.ID, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.coll.FindOne(withSession(ctx, r.session), bson.M{"_id": orderID}).Decode(&o)
	if isNoDocuments(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	f = f.Normalize()
	ctx = withSession(ctx, r.session)

	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return []model.Order{}, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return []model.Order{}, 0, err
	}
	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return []model.Order{}, 0, err
	}
	return orders, total, nil
}

// Update is a compare-and-swap on (_id, version).
func (r *OrderRepository) Update(ctx context.Context, orderID string, expectedVersion int64, patch repo.OrderPatch) (model.Order, error) {
	ctx = withSession(ctx, r.session)

	set := bson.M{"updated_at": time.Now()}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.IsPaid != nil {
		set["is_paid"] = *patch.IsPaid
	}

	var updated model.Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "version": expectedVersion},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == nil {
		return updated, nil
	}
	if !isNoDocuments(err) {
		return model.Order{}, err
	}

	//missing document or stale version
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": orderID})
	if err != nil {
		return model.Order{}, err
	}
	if n == 0 {
		return model.Order{}, repo.ErrNotFound
	}
	return model.Order{}, repo.ErrVersionConflict
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	res, err := r.coll.DeleteOne(withSession(ctx, r.session), bson.M{"_id": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
