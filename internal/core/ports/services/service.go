package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
// It is assembled once at startup with constructor injection; none of the
// services hold package-level state.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Category     CategorySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingService
	Audit        AuditSvcFacade
}
