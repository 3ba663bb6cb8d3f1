package queries

import (
	"errors"
	"strings"

	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"
	"repairshop/internal/pkg/guard"
)

const maxSearchLength = 100

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery pages through orders, newest first. search matches a
// substring of the folio, the client name or the client phone, ignoring case.
type ListOrdersQuery struct {
	status *order.Status
	search string
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListOrdersQuery applies the same paging bounds as NewListAppointmentsQuery.
func NewListOrdersQuery(status *order.Status, search string, limit, offset int) (ListOrdersQuery, error) {
	var statusErr, searchErr, limitErr, offsetErr error

	if status != nil {
		statusErr = status.Validate()
	}
	search = strings.TrimSpace(search)
	if len(search) > maxSearchLength {
		searchErr = errs.NewValueIsOutOfRangeError("search", len(search), 0, maxSearchLength)
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	if err := errors.Join(statusErr, searchErr, limitErr, offsetErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		status: status,
		search: search,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) Search() string {
	return q.search
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}
