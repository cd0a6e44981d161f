package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/store"
)

// loadReferenceData reads categories and currencies once. The result is
// never refreshed; reference rows only change through migrations.
func loadReferenceData(ctx context.Context, st store.Store) (domain.ReferenceData, error) {
	categories, err := st.Reference().ListCategories(ctx)
	if err != nil {
		return domain.ReferenceData{}, fmt.Errorf("load categories: %w", err)
	}
	currencies, err := st.Reference().ListCurrencies(ctx)
	if err != nil {
		return domain.ReferenceData{}, fmt.Errorf("load currencies: %w", err)
	}

	ref := domain.NewReferenceData(categories, currencies)
	if ref.IsEmpty() {
		return domain.ReferenceData{}, errors.New("reference data is empty; were migrations applied?")
	}
	return ref, nil
}
