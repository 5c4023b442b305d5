// Package memory provides an in-process implementation of the ledger repositories for
// development and tests. A unit of work holds the store lock for its whole duration and
// restores a snapshot when it fails.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
)

// Store holds all ledger state in maps guarded by a single lock.
type Store struct {
	mu         sync.RWMutex
	state      state
	failpoints map[string]error
}

type state struct {
	accounts     map[string]domain.Account
	categories   map[string]domain.FinancialCategory
	transactions map[string]domain.Transaction
	journals     map[string]domain.JournalEntry
	budgets      map[string]domain.Budget
	budgetItems  map[string]domain.BudgetItem
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		state: state{
			accounts:     make(map[string]domain.Account),
			categories:   make(map[string]domain.FinancialCategory),
			transactions: make(map[string]domain.Transaction),
			journals:     make(map[string]domain.JournalEntry),
			budgets:      make(map[string]domain.Budget),
			budgetItems:  make(map[string]domain.BudgetItem),
		},
		failpoints: make(map[string]error),
	}
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: (&repo{store: s}).repositories(),
		UnitOfWork:   s,
	}
}

// FailOn makes the named repository operation (e.g. "AddToBalance") return err until
// cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failpoints, op)
		return
	}
	s.failpoints[op] = err
}

// WithinTx runs fn with exclusive access to the store. Writes are applied directly and
// rolled back from a snapshot if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(ctx, (&repo{store: s, inTx: true}).repositories()); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (st state) clone() state {
	return state{
		accounts:     cloneMap(st.accounts),
		categories:   cloneMap(st.categories),
		transactions: cloneMap(st.transactions),
		journals:     cloneMap(st.journals),
		budgets:      cloneMap(st.budgets),
		budgetItems:  cloneMap(st.budgetItems),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// repo implements every repository port over a Store. Outside a unit of work each call
// takes the store lock itself; inside one the lock is already held.
type repo struct {
	store *Store
	inTx  bool
}

func (r *repo) repositories() portsrepo.Repositories {
	return portsrepo.Repositories{
		Accounts:     r,
		Categories:   r,
		Transactions: r,
		Journals:     r,
		Sequences:    r,
		Budgets:      r,
	}
}

func (r *repo) read() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.RLock()
	return r.store.mu.RUnlock
}

func (r *repo) write() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *repo) st() *state {
	return &r.store.state
}

// fail returns the injected error for op, if any. Callers hold the lock.
func (r *repo) fail(op string) error {
	if err, ok := r.store.failpoints[op]; ok {
		return apperrors.NewPersistenceError(op, err)
	}
	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
}
