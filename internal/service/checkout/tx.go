package checkout

import (
	"context"
	"log"

	"github.com/reagan13/backend-itservice/internal/db"
	cartrepo "github.com/reagan13/backend-itservice/internal/repository/cart"
	orderrepo "github.com/reagan13/backend-itservice/internal/repository/order"
	outboxrepo "github.com/reagan13/backend-itservice/internal/repository/outbox"
	productrepo "github.com/reagan13/backend-itservice/internal/repository/product"
)

// Repos is the repository set visible inside one checkout transaction.
type Repos interface {
	Orders() orderrepo.Repository
	Carts() cartrepo.Repository
	Products() productrepo.Repository
	Outbox() outboxrepo.Repository
}

// TxRunner hides transaction begin/commit/rollback from the workflow.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}

type pgRepos struct {
	orders   orderrepo.Repository
	carts    cartrepo.Repository
	products productrepo.Repository
	outbox   outboxrepo.Repository
}

func (r *pgRepos) Orders() orderrepo.Repository     { return r.orders }
func (r *pgRepos) Carts() cartrepo.Repository       { return r.carts }
func (r *pgRepos) Products() productrepo.Repository { return r.products }
func (r *pgRepos) Outbox() outboxrepo.Repository    { return r.outbox }

type pgTxRunner struct {
	provider *db.Provider
	logger   *log.Logger
}

// NewTxRunner builds repositories over the provider's transaction for each
// WithinTx call.
func NewTxRunner(provider *db.Provider, logger *log.Logger) TxRunner {
	return &pgTxRunner{provider: provider, logger: logger}
}

func (t *pgTxRunner) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return t.provider.WithTx(ctx, func(q db.Querier) error {
		return fn(&pgRepos{
			orders:   orderrepo.NewPostgres(q, t.logger),
			carts:    cartrepo.NewPostgres(q, t.logger),
			products: productrepo.NewPostgres(q, t.logger),
			outbox:   outboxrepo.NewPostgres(q),
		})
	})
}
