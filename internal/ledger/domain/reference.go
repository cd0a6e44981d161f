package domain

import (
	"slices"
	"strings"
)

type Category struct {
	ID   int64
	Name string
}

type Currency struct {
	ID       int64
	Code     string
	Name     string
	Symbol   string
	IsActive bool
}

// ReferenceData resolves category names and currency codes to row ids. It
// is built once at startup and never mutated, so concurrent reads need no
// locking.
type ReferenceData struct {
	categories   map[string]int64
	currencies   map[string]int64
	categoryList []Category
	currencyList []Currency
}

// NewReferenceData copies the given rows into an immutable lookup. Inactive
// currencies are listed but do not resolve.
func NewReferenceData(categories []Category, currencies []Currency) ReferenceData {
	rd := ReferenceData{
		categories:   make(map[string]int64, len(categories)),
		currencies:   make(map[string]int64, len(currencies)),
		categoryList: slices.Clone(categories),
		currencyList: slices.Clone(currencies),
	}
	for _, c := range categories {
		rd.categories[c.Name] = c.ID
	}
	for _, c := range currencies {
		if c.IsActive {
			rd.currencies[strings.ToUpper(c.Code)] = c.ID
		}
	}

	slices.SortFunc(rd.categoryList, func(a, b Category) int { return strings.Compare(a.Name, b.Name) })
	slices.SortFunc(rd.currencyList, func(a, b Currency) int { return strings.Compare(a.Code, b.Code) })
	return rd
}

// CategoryID resolves a category by its exact name.
func (r ReferenceData) CategoryID(name string) (int64, bool) {
	id, ok := r.categories[name]
	return id, ok
}

// CurrencyID resolves a currency code. Codes are matched case-insensitively.
func (r ReferenceData) CurrencyID(code string) (int64, bool) {
	id, ok := r.currencies[strings.ToUpper(code)]
	return id, ok
}

// Categories returns a copy of the categories sorted by name.
func (r ReferenceData) Categories() []Category { return slices.Clone(r.categoryList) }

// Currencies returns a copy of the currencies sorted by code.
func (r ReferenceData) Currencies() []Currency { return slices.Clone(r.currencyList) }

// IsEmpty reports whether nothing can be resolved, usually a sign the seed
// migration did not run.
func (r ReferenceData) IsEmpty() bool {
	return len(r.categories) == 0 || len(r.currencies) == 0
}
