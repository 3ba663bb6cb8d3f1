package queries

import (
	"errors"
	"time"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByFolioQuery constructor",
	)
)

// GetOrderQuery looks up a single order either by id or by folio.
//
// Example:
//
//	query, err := NewGetOrderByFolioQuery("ord-1a2b3c4d")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	id    *kernel.UUID
	folio *order.Folio
	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{id: &id, guard: guard.NewConstructorGuard()}, nil
}

// NewGetOrderByFolioQuery accepts the folio in any case and with surrounding spaces.
func NewGetOrderByFolioQuery(folio string) (GetOrderQuery, error) {
	f, err := order.ParseFolio(folio)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{folio: &f, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderView is the read model of a repair order.
type OrderView struct {
	ID                 kernel.UUID
	Folio              order.Folio
	ClientID           kernel.UUID
	Priority           order.Priority
	ProblemDescription string
	Diagnosis          string
	Solution           string
	Status             order.Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderView projects an aggregate; used by the HTTP layer after commands.
func NewOrderView(o *order.Order) OrderView {
	return OrderView{
		ID:                 o.ID(),
		Folio:              o.Folio(),
		ClientID:           o.ClientID(),
		Priority:           o.Priority(),
		ProblemDescription: o.ProblemDescription(),
		Diagnosis:          o.Diagnosis(),
		Solution:           o.Solution(),
		Status:             o.Status(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}
