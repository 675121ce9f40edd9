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

type ProductRepository struct {
	coll    *mongo.Collection
	session mongo.Session
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.coll.FindOne(withSession(ctx, r.session), bson.M{"_id": id}).Decode(&p)
	if isNoDocuments(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductRepository) Upsert(ctx context.Context, p model.Product) error {
	now := time.Now()
	_, err := r.coll.UpdateOne(withSession(ctx, r.session),
		bson.M{"_id": p.ID},
		bson.M{
			"$set": bson.M{
				"name":       p.Name,
				"category":   p.Category,
				"price":      p.Price,
				"in_stock":   p.InStock,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
