package queries

import (
	"context"
	"database/sql"
	"errors"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an errs.ObjectNotFoundError for an unknown id or folio.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	const selectOrder = `
		SELECT
			id,
			folio,
			client_id,
			priority,
			problem_description,
			diagnosis,
			solution,
			status,
			created_at,
			updated_at
		FROM orders
	`

	var (
		row      *sql.Row
		param    string
		paramVal string
	)
	if query.id != nil {
		row = h.db.WithContext(ctx).Raw(selectOrder+"WHERE id = ?", query.id.Bytes()).Row()
		param, paramVal = "order", query.id.String()
	} else {
		row = h.db.WithContext(ctx).Raw(selectOrder+"WHERE folio = ?", query.folio.String()).Row()
		param, paramVal = "folio", query.folio.String()
	}

	view, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderView{}, errs.NewObjectNotFoundError(param, paramVal)
	}
	return view, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (OrderView, error) {
	var (
		view                OrderView
		id, clientID        uuid.UUID
		folio               string
		priority, status    string
		diagnosis, solution sql.NullString
	)

	if err := row.Scan(
		&id,
		&folio,
		&clientID,
		&priority,
		&view.ProblemDescription,
		&diagnosis,
		&solution,
		&status,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return OrderView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.ClientID, err = kernel.UUIDFromBytes(clientID[:]); err != nil {
		return OrderView{}, err
	}
	if view.Priority, err = order.ParsePriority(priority); err != nil {
		return OrderView{}, err
	}
	if view.Status, err = order.ParseStatus(status); err != nil {
		return OrderView{}, err
	}
	view.Folio = order.Folio(folio)
	view.Diagnosis = diagnosis.String
	view.Solution = solution.String

	return view, nil
}
