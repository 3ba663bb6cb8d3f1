package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListOrdersQueryHandler reads the order list straight from the orders table,
// joining clients only when a search term is given.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		SELECT
			o.id,
			o.folio,
			o.client_id,
			o.priority,
			o.problem_description,
			o.diagnosis,
			o.solution,
			o.status,
			o.created_at,
			o.updated_at
		FROM orders o
	`)
	if query.search != "" {
		sb.WriteString("JOIN clients c ON c.id = o.client_id\n")
	}
	sb.WriteString("WHERE TRUE\n")
	if query.status != nil {
		sb.WriteString("AND o.status = ?\n")
		args = append(args, query.status.String())
	}
	if query.search != "" {
		pattern := "%" + likeEscaper.Replace(query.search) + "%"
		sb.WriteString("AND (o.folio ILIKE ? OR c.name ILIKE ? OR c.phone ILIKE ?)\n")
		args = append(args, pattern, pattern, pattern)
	}
	sb.WriteString("ORDER BY o.created_at DESC, o.id\nLIMIT ? OFFSET ?")
	args = append(args, query.limit, query.offset)

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0, query.limit)
	for rows.Next() {
		view, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}
