package mongostore

import (
	"context"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// one document per user, keyed by user id
type cartDocument struct {
	UserID    string           `bson:"_id"`
	Status    model.CartStatus `bson:"status"`
	Items     []model.CartItem `bson:"items"`
	CreatedAt time.Time        `bson:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

type CartRepository struct {
	coll    *mongo.Collection
	session mongo.Session
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

func activeCart(userID string) bson.M {
	return bson.M{"_id": userID, "status": model.CartStatusActive}
}

func (r *CartRepository) ListItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	var doc cartDocument
	err := r.coll.FindOne(withSession(ctx, r.session), activeCart(userID)).Decode(&doc)
	if isNoDocuments(err) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return []model.CartItem{}, err
	}
	if doc.Items == nil {
		return []model.CartItem{}, nil
	}
	return doc.Items, nil
}

func (r *CartRepository) ReplaceItems(ctx context.Context, userID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	now := time.Now()
	_, err := r.coll.UpdateOne(withSession(ctx, r.session),
		bson.M{"_id": userID},
		bson.M{
			"$set": bson.M{
				"status":     model.CartStatusActive,
				"items":      items,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *CartRepository) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	var before cartDocument
	err := r.coll.FindOneAndUpdate(withSession(ctx, r.session),
		activeCart(userID),
		bson.M{"$set": bson.M{"items": []model.CartItem{}, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&before)
	if isNoDocuments(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(len(before.Items)), nil
}
