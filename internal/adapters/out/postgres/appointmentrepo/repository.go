package appointmentrepo

import (
	"context"
	"errors"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/ports"
	"repairshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// exclusionViolation is the SQLSTATE raised by appointments_no_overlap.
	exclusionViolation = "23P01"

	DefaultListLimit = 100
	MaxListLimit     = 500
)

// occupyingClause filters out the statuses that free their window; it mirrors
// the predicate of the exclusion constraint.
const occupyingClause = "status NOT IN ('cancelled', 'no_show')"

// GormAppointmentRepository implements ports.AppointmentRepository using GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// Add saves a new appointment.
func (r *GormAppointmentRepository) Add(ctx context.Context, aggregate *appointment.Appointment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// Update saves every column of an existing appointment.
func (r *GormAppointmentRepository) Update(ctx context.Context, aggregate *appointment.Appointment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AppointmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("appointment", aggregate.ID().String())
	}

	return nil
}

// Get retrieves an appointment by ID.
func (r *GormAppointmentRepository) Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AppointmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("appointment", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// FindOccupyingOverlapping loads the occupying appointments intersecting window.
func (r *GormAppointmentRepository) FindOccupyingOverlapping(
	ctx context.Context,
	window kernel.TimeWindow,
) ([]*appointment.Appointment, error) {
	var dtos []AppointmentDTO
	err := r.db.WithContext(ctx).
		Where(occupyingClause).
		Where("scheduled_start < ? AND effective_end > ?", window.End(), window.Start()).
		Order("scheduled_start, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// FindDueForReminder loads occupying appointments starting in [now, now+lead)
// that have not been reminded yet.
func (r *GormAppointmentRepository) FindDueForReminder(
	ctx context.Context,
	now time.Time,
	lead time.Duration,
) ([]*appointment.Appointment, error) {
	var dtos []AppointmentDTO
	err := r.db.WithContext(ctx).
		Where(occupyingClause).
		Where("reminder_sent = FALSE").
		Where("scheduled_start >= ? AND scheduled_start < ?", now, now.Add(lead)).
		Order("scheduled_start, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// List pages through appointments ordered by start. A zero limit means
// DefaultListLimit; larger values are capped at MaxListLimit.
func (r *GormAppointmentRepository) List(
	ctx context.Context,
	filter ports.AppointmentFilter,
) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&AppointmentDTO{})

	if filter.From != nil {
		q = q.Where("effective_end > ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("scheduled_start < ?", *filter.To)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", filter.Status.String())
	}
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", filter.ClientID.Bytes())
	}

	var dtos []AppointmentDTO
	err := q.Order("scheduled_start, id").
		Limit(ClampLimit(filter.Limit)).
		Offset(max(filter.Offset, 0)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ClampLimit applies the list paging bounds.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

// translate reports exclusion violations as scheduling conflicts. The
// database does not say which row blocked the write, so Conflict stays nil.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return &appointment.ConflictError{}
	}
	return err
}
