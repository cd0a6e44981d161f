package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. Sub-repositories are exposed as methods so a Tx can hand
// out the same repositories bound to the transaction, and so nobody opens
// a transaction inside a transaction by accident.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Expenses() Expenses
	Reference() Reference

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the email exactly (case-sensitive).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// SetUserActive flips the soft-delete flag.
	SetUserActive(ctx context.Context, id string, active bool) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetActiveRefreshToken returns the newest record of userID that is
	// unrevoked and expires after now.
	GetActiveRefreshToken(ctx context.Context, userID string, now time.Time) (domain.RefreshToken, error)

	// RevokeActiveRefreshTokens sets revoked_at=now on every active record
	// of userID and reports how many were revoked.
	RevokeActiveRefreshTokens(ctx context.Context, userID string, now time.Time) (int64, error)

	// CountActiveRefreshTokens counts unrevoked, unexpired records.
	CountActiveRefreshTokens(ctx context.Context, userID string, now time.Time) (int, error)
}

type Expenses interface {
	// CreateExpense inserts a row and returns its id.
	CreateExpense(ctx context.Context, row domain.ExpenseRow) (int64, error)

	// GetExpense returns the resolved expense if it exists and is owned by userID.
	GetExpense(ctx context.Context, userID string, id int64) (domain.Expense, error)

	// ListExpenses orders by expense date then id, newest first.
	ListExpenses(ctx context.Context, userID string, page domain.Page) ([]domain.Expense, error)

	// ListExpensesByCategory is ListExpenses filtered by category name.
	ListExpensesByCategory(ctx context.Context, userID, category string, page domain.Page) ([]domain.Expense, error)

	// UpdateExpense applies changes in a single statement matching id and
	// owner. ErrNotFound when no row matched.
	UpdateExpense(ctx context.Context, userID string, id int64, changes domain.ExpenseChanges) error

	// DeleteExpense deletes in a single statement matching id and owner.
	// ErrNotFound when no row matched.
	DeleteExpense(ctx context.Context, userID string, id int64) error
}

type Reference interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
