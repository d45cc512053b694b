package services

import (
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rateProvider portssvc.RateProviderSvc) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit and exchange rate services come first since the posting engine
	// depends on both.
	container.Audit = NewAuditService(repos.AuditLogRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, rateProvider)

	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		container.ExchangeRate,
		container.Audit,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
