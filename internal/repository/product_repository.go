package repository

import (
	"context"
	"errors"

	"github.com/Raviram02/HostelBite/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// Catalog reads for pricing, plus Upsert for seeding.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
	Upsert(ctx context.Context, p model.Product) error
}
