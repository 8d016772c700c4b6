package services

import (
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	portssvc "github.com/finledger/posting_engine/internal/core/ports/services"
)

// NewServiceContainer wires every service facade against the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Posting: NewPostingService(repos.RuleRepo, repos.JournalRepo, repos.PeriodRepo, repos.AuditRepo, repos.CurrencyRepo),
		Rule:    NewRuleService(repos.RuleRepo),
		Entry:   NewEntryService(repos.JournalRepo, repos.AuditRepo),
	}
}
