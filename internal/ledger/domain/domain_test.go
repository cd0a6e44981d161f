package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		wantErr       bool
	}{
		{"defaults", 30, 0, false},
		{"lower bounds", 1, 0, false},
		{"upper bounds", 50, 50, false},
		{"limit zero", 0, 0, true},
		{"limit 51", 51, 0, true},
		{"offset 51", 30, 51, true},
		{"negative offset", 30, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := domain.NewPage(tt.limit, tt.offset)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.limit, page.Limit)
			require.Equal(t, tt.offset, page.Offset)
		})
	}

	require.Equal(t, domain.Page{Limit: 30}, domain.DefaultPage())
}

func TestReferenceData(t *testing.T) {
	categories := []domain.Category{{ID: 2, Name: "Travel"}, {ID: 1, Name: "Food & Groceries"}}
	currencies := []domain.Currency{
		{ID: 1, Code: "USD", Symbol: "$", IsActive: true},
		{ID: 9, Code: "XXX", Symbol: "?", IsActive: false},
	}
	rd := domain.NewReferenceData(categories, currencies)

	id, ok := rd.CategoryID("Travel")
	require.True(t, ok)
	require.EqualValues(t, 2, id)

	_, ok = rd.CategoryID("travel")
	require.False(t, ok, "category names are exact")

	id, ok = rd.CurrencyID("usd")
	require.True(t, ok)
	require.EqualValues(t, 1, id)

	_, ok = rd.CurrencyID("XXX")
	require.False(t, ok, "inactive currencies do not resolve")

	// Mutating the inputs or the returned copies leaves the lookup intact.
	categories[0].Name = "Changed"
	list := rd.Categories()
	list[0].Name = "Changed"
	require.Equal(t, "Food & Groceries", rd.Categories()[0].Name)
	require.False(t, rd.IsEmpty())
	require.True(t, domain.ReferenceData{}.IsEmpty())
}

func TestRefreshToken_IsActive(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Minute)

	require.True(t, domain.RefreshToken{ExpiresAt: now.Add(time.Hour)}.IsActive(now))
	require.False(t, domain.RefreshToken{ExpiresAt: now.Add(-time.Second)}.IsActive(now))
	require.False(t, domain.RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked}.IsActive(now))
}

func TestExpense_DateParts(t *testing.T) {
	e := domain.Expense{Date: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)}
	require.Equal(t, 2024, e.Year())
	require.Equal(t, 2, e.Month())
	require.Equal(t, 29, e.Day())
	require.True(t, domain.ExpensePatch{}.IsEmpty())
	require.True(t, domain.ExpenseChanges{}.IsEmpty())
}
