package mongostore

import (
	"context"

	repo "github.com/Raviram02/HostelBite/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

type txRepos struct {
	orders    *OrderRepository
	carts     *CartRepository
	products  *ProductRepository
	auditLogs *AuditLogRepository
}

func (r *txRepos) Orders() repo.OrderRepository       { return r.orders }
func (r *txRepos) Carts() repo.CartRepository         { return r.carts }
func (r *txRepos) Products() repo.ProductRepository   { return r.products }
func (r *txRepos) AuditLogs() repo.AuditLogRepository { return r.auditLogs }

// TxManager runs fn inside a multi-document transaction when the deployment
// supports them. On a standalone server fn runs without one and relies on the
// per-order version check alone.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if !m.store.SupportsTransactions {
		return fn(m.repos(nil))
	}

	session, err := m.store.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(m.repos(session))
	})
	return err
}

func (m *TxManager) repos(session mongo.Session) *txRepos {
	db := m.store.DB
	r := &txRepos{
		orders:    NewOrderRepository(db),
		carts:     NewCartRepository(db),
		products:  NewProductRepository(db),
		auditLogs: NewAuditLogRepository(db),
	}
	r.orders.session = session
	r.carts.session = session
	r.products.session = session
	r.auditLogs.session = session
	return r
}
