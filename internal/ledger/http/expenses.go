package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

type ExpenseHandler struct {
	ExpenseService *service.ExpenseService
	Now            func() time.Time
}

func (h *ExpenseHandler) today() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now().UTC()
}

// HandleCreate godoc
//
//	@Summary		Record an expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ledgersdk.ExpenseCreateRequest		true	"expense"
//	@Success		201		{object}	ledgersdk.ExpenseResponse			"created expense"
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"invalid or missing access token"
//	@Failure		422		{object}	ledgersdk.ErrorResponse				"unknown category or currency, or validation failed"
//	@Router			/expenses [post].
func (h *ExpenseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req ledgersdk.ExpenseCreateRequest
	today := h.today()
	if !decodeBody(w, r, &req) || !validate(w, req.Validate(today)) {
		return
	}
	date, _ := ledgersdk.ParseExpenseDate(req.ExpenseDate, today)

	e, err := h.ExpenseService.Create(r.Context(), userID, domain.NewExpense{
		Category: req.Category,
		Currency: req.Currency,
		Amount:   req.Amount,
		Note:     req.Note,
		Date:     date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, expenseResponse(e))
}

// HandleList godoc
//
//	@Summary		List expenses
//	@Description	Newest expense date first.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int									false	"page size, 1-50"	default(30)
//	@Param			offset	query		int									false	"rows to skip, 0-50"	default(0)
//	@Success		200		{array}		ledgersdk.ExpenseResponse
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"invalid or missing access token"
//	@Failure		422		{object}	ledgersdk.ValidationErrorResponse	"pagination out of range"
//	@Router			/expenses [get].
func (h *ExpenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	list, err := h.ExpenseService.List(r.Context(), userID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, expenseResponses(list))
}

// HandleGet godoc
//
//	@Summary		Get an expense or list a category
//	@Description	A numeric ref is an expense id and returns that expense. Anything else is a category name and
//	@Description	returns the caller's expenses in it, paginated like the list endpoint.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			ref		path		string								true	"expense id or category name"
//	@Param			limit	query		int									false	"page size, 1-50"	default(30)
//	@Param			offset	query		int									false	"rows to skip, 0-50"	default(0)
//	@Success		200		{object}	ledgersdk.ExpenseResponse			"expense, or an array of expenses for a category"
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"invalid or missing access token"
//	@Failure		404		{object}	ledgersdk.ErrorResponse				"expense not found"
//	@Failure		422		{object}	ledgersdk.ValidationErrorResponse	"pagination out of range"
//	@Router			/expenses/{ref} [get].
func (h *ExpenseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ref := r.PathValue("ref")
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		e, err := h.ExpenseService.Get(r.Context(), userID, id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, expenseResponse(e))
		return
	}

	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	list, err := h.ExpenseService.ListByCategory(r.Context(), userID, ref, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, expenseResponses(list))
}

// HandleUpdate godoc
//
//	@Summary		Update an expense
//	@Description	Only the fields present in the body change.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			ref		path		int									true	"expense id"
//	@Param			body	body		ledgersdk.ExpensePatchRequest		true	"fields to change"
//	@Success		206		{object}	ledgersdk.ExpenseResponse			"updated expense"
//	@Failure		400		{object}	ledgersdk.ErrorResponse				"unknown category or currency"
//	@Failure		401		{object}	ledgersdk.ErrorResponse				"invalid or missing access token"
//	@Failure		404		{object}	ledgersdk.ErrorResponse				"expense not found"
//	@Failure		422		{object}	ledgersdk.ValidationErrorResponse	"validation failed"
//	@Router			/expenses/{ref} [patch].
func (h *ExpenseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ledgersdk.ExpensePatchRequest
	today := h.today()
	if !decodeBody(w, r, &req) || !validate(w, req.Validate(today)) {
		return
	}

	patch := domain.ExpensePatch{
		Category: req.CategoryName,
		Currency: req.CurrencyCode,
		Amount:   req.Amount,
		Note:     req.Note,
	}
	if req.ExpenseDate != nil {
		date, _ := ledgersdk.ParseExpenseDate(*req.ExpenseDate, today)
		patch.Date = &date
	}

	e, err := h.ExpenseService.Update(r.Context(), userID, id, patch)
	switch {
	case errors.Is(err, service.ErrCategoryDoesNotExist):
		ledgersdk.ErrCategoryNotSupported.WithStatus(http.StatusBadRequest).WriteError(w)
		return
	case errors.Is(err, service.ErrCurrencyDoesNotExist):
		ledgersdk.ErrCurrencyNotSupported.WithStatus(http.StatusBadRequest).WriteError(w)
		return
	case err != nil:
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusPartialContent, expenseResponse(e))
}

// HandleDelete godoc
//
//	@Summary		Delete an expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Param			ref	path	int	true	"expense id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	ledgersdk.ErrorResponse				"invalid or missing access token"
//	@Failure		404	{object}	ledgersdk.ErrorResponse				"expense not found"
//	@Failure		422	{object}	ledgersdk.ValidationErrorResponse	"id is not an integer"
//	@Router			/expenses/{ref} [delete].
func (h *ExpenseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.ExpenseService.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("ref"), 10, 64)
	if err != nil {
		ledgersdk.NewValidationError(map[string]string{"id": "must be an integer"}).WriteError(w)
		return 0, false
	}
	return id, true
}

// parsePage reads limit and offset from the query. Absent values take the
// defaults; anything else goes through domain.NewPage.
func parsePage(w http.ResponseWriter, r *http.Request) (domain.Page, bool) {
	page := domain.DefaultPage()
	details := make(map[string]string)

	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details["limit"] = "must be an integer"
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			details["offset"] = "must be an integer"
		}
		page.Offset = n
	}
	if !validate(w, details) {
		return domain.Page{}, false
	}

	page, err := domain.NewPage(page.Limit, page.Offset)
	if err != nil {
		writeError(w, r, err)
		return domain.Page{}, false
	}
	return page, true
}

func expenseResponse(e domain.Expense) ledgersdk.ExpenseResponse {
	return ledgersdk.ExpenseResponse{
		ID:             e.ID,
		CategoryName:   e.CategoryName,
		CurrencyCode:   e.CurrencyCode,
		CurrencySymbol: e.CurrencySymbol,
		Amount:         e.Amount,
		Note:           e.Note,
		Year:           e.Year(),
		Month:          e.Month(),
		Day:            e.Day(),
	}
}

func expenseResponses(list []domain.Expense) []ledgersdk.ExpenseResponse {
	out := make([]ledgersdk.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, expenseResponse(e))
	}
	return out
}
