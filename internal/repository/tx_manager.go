package repository

import "context"

// repositories bound to one transaction
type TxRepos interface {
	Orders() OrderRepository
	Carts() CartRepository
	Products() ProductRepository
	AuditLogs() AuditLogRepository
}

// Hides begin/commit/rollback from the use cases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
