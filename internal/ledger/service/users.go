package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
)

// UserDirectory looks up and creates users.
type UserDirectory struct {
	Store store.Store
}

// FindByEmail matches the email exactly. Absent users yield store.ErrNotFound.
func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return d.Store.Users().GetUserByEmail(ctx, email)
}

func (d *UserDirectory) FindByID(ctx context.Context, id string) (domain.User, error) {
	return d.Store.Users().GetUserByID(ctx, id)
}

// Create inserts u through db, which may be a transaction.
func (d *UserDirectory) Create(ctx context.Context, db store.Store, u domain.User) error {
	err := db.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrUserAlreadyExists
	}
	return err
}

// SetActive updates the soft-delete flag through db.
func (d *UserDirectory) SetActive(ctx context.Context, db store.Store, id string, active bool) error {
	err := db.Users().SetUserActive(ctx, id, active)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserDoesntExist
	}
	return err
}
