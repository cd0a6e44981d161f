package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultPageLimit = 30
	MaxPageLimit     = 50
	MaxPageOffset    = 50
)

var ErrInvalidPage = errors.New("domain: invalid page")

// Page is a validated limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is used when the caller supplies no pagination.
func DefaultPage() Page {
	return Page{Limit: DefaultPageLimit}
}

// NewPage validates limit in [1,50] and offset in [0,50].
func NewPage(limit, offset int) (Page, error) {
	if limit < 1 || limit > MaxPageLimit {
		return Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidPage, MaxPageLimit)
	}
	if offset < 0 || offset > MaxPageOffset {
		return Page{}, fmt.Errorf("%w: offset must be between 0 and %d", ErrInvalidPage, MaxPageOffset)
	}
	return Page{Limit: limit, Offset: offset}, nil
}
