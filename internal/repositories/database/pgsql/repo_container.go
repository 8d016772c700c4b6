package pgsql

import (
	portsrepo "github.com/finledger/posting_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RuleRepo:     newPgxPostingRuleRepository(dbPool),
		JournalRepo:  newPgxJournalEntryRepository(dbPool),
		PeriodRepo:   newPgxFiscalPeriodRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
		CurrencyRepo: newPgxCurrencyRepository(dbPool),
	}
}
