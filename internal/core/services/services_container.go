package services

import (
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil to run without the budget actuals cache.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.BudgetActualsCache, opts ...Option) *portssvc.ServiceContainer {
	ledger := NewAccountLedger(repos.Accounts, opts...)
	sequences := NewSequenceGenerator(opts...)
	journal := NewJournalEntryEngine(ledger, sequences, cfg.CashAccountCode, opts...)
	reversal := NewReversalEngine(ledger, sequences, repos.UnitOfWork, cache, opts...)

	return &portssvc.ServiceContainer{
		Account:     ledger,
		Category:    NewCategoryService(repos.Categories, repos.Accounts, ledger, opts...),
		Transaction: NewTransactionManager(repos, sequences, journal, reversal, cache, opts...),
		Journal:     NewJournalService(repos.Journals, reversal, opts...),
		Budget:      NewBudgetActualsCalculator(repos, cache, opts...),
		Token:       NewTokenService(cfg),
	}
}
