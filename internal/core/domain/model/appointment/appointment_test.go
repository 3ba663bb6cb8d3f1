package appointment_test

import (
	"strings"
	"testing"
	"time"

	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ten = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func mustSlot(t *testing.T, start time.Time, minutes int, end *time.Time) appointment.Slot {
	t.Helper()
	s, err := appointment.NewSlot(start, minutes, end)
	require.NoError(t, err)
	return s
}

func newTestAppointment(t *testing.T, slot appointment.Slot) *appointment.Appointment {
	t.Helper()
	a, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, "Drop-off", "", slot, "", ten)
	require.NoError(t, err)
	return a
}

func TestStatus(t *testing.T) {
	occupying := map[appointment.Status]bool{
		appointment.StatusScheduled:  true,
		appointment.StatusConfirmed:  true,
		appointment.StatusInProgress: true,
		appointment.StatusCompleted:  true,
		appointment.StatusCancelled:  false,
		appointment.StatusNoShow:     false,
	}
	require.Len(t, appointment.Statuses(), len(occupying))

	for _, s := range appointment.Statuses() {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, occupying[s], s.IsOccupying())

			parsed, err := appointment.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	assert.False(t, appointment.StatusUnknown.IsOccupying())
	_, err := appointment.ParseStatus("postponed")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	for _, s := range appointment.NonOccupyingStatuses() {
		assert.False(t, s.IsOccupying())
	}
}

func TestNewSlot(t *testing.T) {
	t.Run("duration_bounds_are_inclusive", func(t *testing.T) {
		for _, minutes := range []int{appointment.MinDurationMinutes, 60, appointment.MaxDurationMinutes} {
			_, err := appointment.NewSlot(ten, minutes, nil)
			require.NoError(t, err, minutes)
		}
	})

	t.Run("duration_out_of_range", func(t *testing.T) {
		for _, minutes := range []int{0, 14, 481, -30} {
			_, err := appointment.NewSlot(ten, minutes, nil)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, minutes)
			assert.True(t, errs.IsValidation(err))
		}
	})

	t.Run("end_date_must_be_after_start", func(t *testing.T) {
		same := ten
		before := ten.Add(-time.Minute)

		_, err := appointment.NewSlot(ten, 30, &same)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = appointment.NewSlot(ten, 30, &before)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_start_is_required", func(t *testing.T) {
		_, err := appointment.NewSlot(time.Time{}, 30, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var s appointment.Slot
		require.ErrorIs(t, s.Validate(), appointment.ErrSlotIsNotConstructed)
	})
}

func TestSlot_EffectiveEnd(t *testing.T) {
	t.Run("start_plus_duration", func(t *testing.T) {
		// When
		s := mustSlot(t, ten, 45, nil)

		// Then
		assert.Equal(t, ten.Add(45*time.Minute), s.EffectiveEnd())
		assert.Nil(t, s.EndDate())
		assert.Equal(t, s.Occupied(), s.Proposed())
	})

	t.Run("explicit_end_wins", func(t *testing.T) {
		end := ten.Add(3 * time.Hour)
		s := mustSlot(t, ten, 30, &end)

		assert.Equal(t, end, s.EffectiveEnd())
		assert.Equal(t, end, s.Occupied().End())
		assert.Equal(t, ten.Add(30*time.Minute), s.Proposed().End())

		// the slot keeps its own copy
		got := s.EndDate()
		*got = ten.Add(time.Hour)
		assert.Equal(t, end, s.EffectiveEnd())
	})
}

func TestNewAppointment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		orderID := kernel.NewUUID()
		a, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), &orderID,
			"  Pick up laptop ", " bring charger ", mustSlot(t, ten, 30, nil), "", ten)

		require.NoError(t, err)
		assert.Equal(t, "Pick up laptop", a.Title())
		assert.Equal(t, "bring charger", a.Description())
		assert.Equal(t, appointment.StatusScheduled, a.Status())
		assert.False(t, a.ReminderSent())
		assert.True(t, a.IsOccupying())
		require.NotNil(t, a.OrderID())
		assert.True(t, orderID.IsEqual(*a.OrderID()))
		assert.Equal(t, ten.Add(30*time.Minute), a.EffectiveEnd())
	})

	t.Run("title_rules", func(t *testing.T) {
		slot := mustSlot(t, ten, 30, nil)

		_, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, "   ", "", slot, "", ten)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, strings.Repeat("x", 201), "", slot, "", ten)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, strings.Repeat("é", 200), "", slot, "", ten)
		require.NoError(t, err)
	})

	t.Run("unconstructed_slot", func(t *testing.T) {
		_, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, "x", "", appointment.Slot{}, "", ten)
		require.ErrorIs(t, err, appointment.ErrSlotIsNotConstructed)
	})

	t.Run("missing_client", func(t *testing.T) {
		_, err := appointment.NewAppointment(kernel.NewUUID(), kernel.UUID{}, nil, "x", "", mustSlot(t, ten, 30, nil), "", ten)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAppointment_Reschedule(t *testing.T) {
	a := newTestAppointment(t, mustSlot(t, ten, 30, nil))
	require.NoError(t, a.MarkReminderSent(ten))
	require.True(t, a.ReminderSent())

	later := ten.Add(24 * time.Hour)
	require.NoError(t, a.Reschedule(mustSlot(t, later, 90, nil), ten.Add(time.Minute)))

	assert.Equal(t, later, a.Start())
	assert.Equal(t, 90, a.DurationMinutes())
	assert.False(t, a.ReminderSent())
	assert.Equal(t, ten.Add(time.Minute), a.UpdatedAt())

	require.ErrorIs(t, a.Reschedule(appointment.Slot{}, ten), appointment.ErrSlotIsNotConstructed)
	assert.Equal(t, later, a.Start())
}

func TestAppointment_ChangeStatus(t *testing.T) {
	a := newTestAppointment(t, mustSlot(t, ten, 30, nil))

	reoccupies, err := a.ChangeStatus(appointment.StatusConfirmed, ten)
	require.NoError(t, err)
	assert.False(t, reoccupies)

	reoccupies, err = a.ChangeStatus(appointment.StatusCancelled, ten)
	require.NoError(t, err)
	assert.False(t, reoccupies)
	assert.False(t, a.IsOccupying())

	reoccupies, err = a.ChangeStatus(appointment.StatusNoShow, ten)
	require.NoError(t, err)
	assert.False(t, reoccupies)

	reoccupies, err = a.ChangeStatus(appointment.StatusScheduled, ten)
	require.NoError(t, err)
	assert.True(t, reoccupies)

	_, err = a.ChangeStatus(appointment.StatusUnknown, ten)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, appointment.StatusScheduled, a.Status())
}

func TestAppointment_NeedsReminder(t *testing.T) {
	lead := 24 * time.Hour
	now := ten.Add(-2 * time.Hour)

	a := newTestAppointment(t, mustSlot(t, ten, 30, nil))
	assert.True(t, a.NeedsReminder(now, lead))

	assert.False(t, a.NeedsReminder(ten.Add(time.Minute), lead), "already started")
	assert.False(t, a.NeedsReminder(ten.Add(-lead), lead), "start is exactly at the end of the lead window")

	require.NoError(t, a.MarkReminderSent(now))
	assert.False(t, a.NeedsReminder(now, lead))

	b := newTestAppointment(t, mustSlot(t, ten, 30, nil))
	_, err := b.ChangeStatus(appointment.StatusCancelled, now)
	require.NoError(t, err)
	assert.False(t, b.NeedsReminder(now, lead))
}

func TestConflictError(t *testing.T) {
	// Given
	blocking := newTestAppointment(t, mustSlot(t, ten, 60, nil))

	// When
	err := error(&appointment.ConflictError{Conflict: blocking})

	// Then
	require.ErrorIs(t, err, appointment.ErrSchedulingConflict)
	assert.Contains(t, err.Error(), blocking.ID().String())
	assert.Contains(t, err.Error(), `"Drop-off"`)
	assert.Contains(t, err.Error(), "60 min")

	anonymous := error(&appointment.ConflictError{})
	require.ErrorIs(t, anonymous, appointment.ErrSchedulingConflict)
	assert.Contains(t, anonymous.Error(), "overlaps an existing appointment")
}

func TestAppointment_Validate(t *testing.T) {
	var a appointment.Appointment
	require.ErrorIs(t, a.Validate(), appointment.ErrAppointmentIsNotConstructed)
	require.ErrorIs(t, a.Reschedule(mustSlot(t, ten, 30, nil), ten), appointment.ErrAppointmentIsNotConstructed)
}
