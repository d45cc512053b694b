package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories into the provider
// handed to the service layer.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		AuditLogRepo:     newPgxAuditLogRepository(dbPool),
		ReportingRepo:    newReportingRepository(dbPool),
	}
}
