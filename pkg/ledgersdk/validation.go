package ledgersdk

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	requiredReason = "required"

	maxEmailLength    = 100
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNoteLength     = 500

	// Amounts are below 10^12 with at most two decimal places.
	maxAmountIntegerDigits = 12
	maxAmountScale         = 2
)

var (
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reDigit   = regexp.MustCompile(`\d`)
	reSpecial = regexp.MustCompile(`[!@#$%^&*(),.:<>|?]`)
)

// Validate checks the signup fields. Returns a map of field names to error
// messages, or nil if all fields are valid.
func (r SignupRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if reason := validateEmail(r.Email); reason != "" {
		errs["email"] = reason
	}
	if reason := validatePassword(r.Password); reason != "" {
		errs["password"] = reason
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate only checks presence; credential checks are the server's job.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Email) == "" {
		errs["email"] = requiredReason
	}
	if r.Password == "" {
		errs["password"] = requiredReason
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r RefreshRequest) Validate() map[string]string {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return map[string]string{"refresh_token": requiredReason}
	}
	return nil
}

// Validate checks a new expense against the calendar day of today.
func (r ExpenseCreateRequest) Validate(today time.Time) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Category) == "" {
		errs["category"] = requiredReason
	}
	if strings.TrimSpace(r.Currency) == "" {
		errs["currency"] = requiredReason
	}
	if reason := validateAmount(r.Amount); reason != "" {
		errs["amount"] = reason
	}
	if r.Note != nil {
		if reason := validateNote(*r.Note); reason != "" {
			errs["note"] = reason
		}
	}
	if r.ExpenseDate == "" {
		errs["expense_date"] = requiredReason
	} else if _, reason := ParseExpenseDate(r.ExpenseDate, today); reason != "" {
		errs["expense_date"] = reason
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate applies the create rules to the fields present in the patch.
func (r ExpensePatchRequest) Validate(today time.Time) map[string]string {
	errs := make(map[string]string)

	if r.CategoryName != nil && strings.TrimSpace(*r.CategoryName) == "" {
		errs["category_name"] = "must not be empty"
	}
	if r.CurrencyCode != nil && strings.TrimSpace(*r.CurrencyCode) == "" {
		errs["currency_code"] = "must not be empty"
	}
	if r.Amount != nil {
		if reason := validateAmount(*r.Amount); reason != "" {
			errs["amount"] = reason
		}
	}
	if r.Note != nil {
		if reason := validateNote(*r.Note); reason != "" {
			errs["note"] = reason
		}
	}
	if r.ExpenseDate != nil {
		if _, reason := ParseExpenseDate(*r.ExpenseDate, today); reason != "" {
			errs["expense_date"] = reason
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseExpenseDate parses a YYYY-MM-DD date and rejects days after today.
// The returned time is midnight UTC. A non-empty reason means the value was
// rejected.
func ParseExpenseDate(s string, today time.Time) (time.Time, string) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, "must be a date in YYYY-MM-DD format"
	}
	y, m, day := today.Date()
	if d.After(time.Date(y, m, day, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, "can't be in the future"
	}
	return d, ""
}

func validateEmail(email string) string {
	switch {
	case email == "":
		return requiredReason
	case len(email) > maxEmailLength:
		return "too long (max 100)"
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "must be a valid email address"
	}
	_, domain, _ := strings.Cut(addr.Address, "@")
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "must be a valid email address"
	}
	return ""
}

func validatePassword(pw string) string {
	switch {
	case pw == "":
		return requiredReason
	case utf8.RuneCountInString(pw) < minPasswordLength:
		return "too short (min 8)"
	case utf8.RuneCountInString(pw) > maxPasswordLength:
		return "too long (max 128)"
	case !reUpper.MatchString(pw):
		return "must contain an upper-case letter"
	case !reDigit.MatchString(pw):
		return "must contain a digit"
	case !reSpecial.MatchString(pw):
		return "must contain one of !@#$%^&*(),.:<>|?"
	}
	return ""
}

// validateAmount only inspects the exponent and the coefficient's digit
// count, never the expanded value, so "1e50000000" is rejected cheaply.
func validateAmount(amount decimal.Decimal) string {
	switch {
	case !amount.IsPositive():
		return "must be greater than 0"
	case amount.Exponent() < -maxAmountScale:
		return "at most 2 decimal places"
	case int64(amount.NumDigits())+int64(amount.Exponent()) > maxAmountIntegerDigits:
		return "must be less than 1000000000000"
	}
	return ""
}

func validateNote(note string) string {
	if utf8.RuneCountInString(note) > maxNoteLength {
		return "too long (max 500)"
	}
	return ""
}
