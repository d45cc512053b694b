package repositories

// RepositoryProvider bundles the concrete repository implementations handed to
// the service layer. It is assembled once at startup and passed explicitly;
// there is no package-level store handle.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	AuditLogRepo     AuditLogRepositoryFacade
	ReportingRepo    ReportingRepository
}
