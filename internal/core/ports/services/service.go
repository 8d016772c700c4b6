package services

// ServiceContainer holds all service facades for route registration.
type ServiceContainer struct {
	Posting PostingSvcFacade
	Rule    RuleSvcFacade
	Entry   EntrySvcFacade
}
