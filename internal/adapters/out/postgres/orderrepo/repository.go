package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
	"repairshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolation = "23505"
	folioConstraint = "orders_folio_key"
)

// updatableColumns are the order columns a status change or field-level
// update may touch. Listed explicitly so that cleared optional fields are
// written as NULL instead of being skipped as zero values.
var updatableColumns = []string{"priority", "diagnosis", "solution", "status", "updated_at"}

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Pending history entries of the aggregate are inserted in the same database
// handle as the order row; run inside a unit of work they commit or roll back
// together with the status.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its creation history. A folio collision is
// reported as order.ErrFolioTaken. The insert runs in a nested transaction so
// that inside a unit of work only its savepoint is rolled back and the
// enclosing transaction stays usable for another attempt.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		return translate(err)
	}

	return r.flushHistory(ctx, aggregate)
}

// Update saves an existing order and appends its pending history.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(updatableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return r.flushHistory(ctx, aggregate)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves an order by ID and locks its row (SELECT ... FOR UPDATE).
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetByFolio retrieves an order by its folio.
func (r *GormOrderRepository) GetByFolio(ctx context.Context, folio order.Folio) (*order.Order, error) {
	if err := folio.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "folio = ?", folio.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("folio", folio.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) flushHistory(ctx context.Context, aggregate *order.Order) error {
	pending := aggregate.PendingHistory()
	if len(pending) == 0 {
		return nil
	}

	// one statement per entry so seq follows the aggregate's order
	for _, entry := range pending {
		dto := historyFromDomain(entry)
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}

	aggregate.ClearPendingHistory()
	return nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == folioConstraint {
		return fmt.Errorf("%w: %w", order.ErrFolioTaken, err)
	}
	return err
}
