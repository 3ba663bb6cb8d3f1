package commands_test

import (
	"errors"
	"testing"
	"time"

	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/services"
	"repairshop/internal/core/ports"
	"repairshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 2, 10, hour, minute, 0, 0, time.UTC)
}

func existingAppointment(t *testing.T, title string, start time.Time, minutes int) *appointment.Appointment {
	t.Helper()
	slot, err := appointment.NewSlot(start, minutes, nil)
	require.NoError(t, err)
	a, err := appointment.NewAppointment(kernel.NewUUID(), kernel.NewUUID(), nil, title, "", slot, "", t0)
	require.NoError(t, err)
	return a
}

func TestNewScheduleAppointmentCommand(t *testing.T) {
	t.Run("zero_duration_uses_default", func(t *testing.T) {
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Drop-off", "", at(10, 0), 0, nil, "")

		require.NoError(t, err)
		assert.Equal(t, appointment.DefaultDurationMinutes, cmd.Slot().DurationMinutes())
	})

	t.Run("rejects_out_of_range_duration_before_persistence", func(t *testing.T) {
		_, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Drop-off", "", at(10, 0), 600, nil, "")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_end_before_start", func(t *testing.T) {
		end := at(9, 0)
		_, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), kernel.NewUUID(), nil,
			"Drop-off", "", at(10, 0), 30, &end, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestScheduleAppointmentCommandHandler_Handle(t *testing.T) {
	c := newClient(t)
	a := existingAppointment(t, "A", at(10, 0), 60)

	newHandler := func(uow *MockUoW, publisher ports.EventPublisher) commands.ScheduleAppointmentCommandHandler {
		return commands.NewScheduleAppointmentCommandHandler(MockUoWFactory{uow}, services.NewConflictDetector(),
			publisher, discardLogger())
	}

	t.Run("overlap_is_a_conflict_naming_the_existing_appointment", func(t *testing.T) {
		// Given
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), c.ID(), nil, "B", "", at(10, 30), 30, nil, "")
		require.NoError(t, err)

		clients := new(MockClientRepository)
		appts := new(MockAppointmentRepository)
		uow := newMockUoW(clients, nil, appts)
		clients.On("Get", mock.Anything, c.ID()).Return(c, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, cmd.Slot().Proposed()).
			Return([]*appointment.Appointment{a}, nil).Once()

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, appointment.ErrSchedulingConflict)
		var ce *appointment.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.True(t, ce.Conflict.ID().IsEqual(a.ID()))
		appts.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("back_to_back_is_booked", func(t *testing.T) {
		// Given
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), c.ID(), nil, "C", "", at(11, 0), 30, nil, "")
		require.NoError(t, err)

		clients := new(MockClientRepository)
		appts := new(MockAppointmentRepository)
		uow := newMockUoW(clients, nil, appts)
		publisher := new(MockPublisher)
		clients.On("Get", mock.Anything, c.ID()).Return(c, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, mock.Anything).Return([]*appointment.Appointment{a}, nil)
		appts.On("Add", mock.Anything, mock.AnythingOfType("*appointment.Appointment")).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.Event) bool {
			return len(events) == 1 && events[0].Type == ports.EventAppointmentScheduled
		})).Return(nil).Once()

		// When
		booked, err := newHandler(uow, publisher).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusScheduled, booked.Status())
		assert.Equal(t, at(11, 30), booked.EffectiveEnd())
		appts.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("unknown_client", func(t *testing.T) {
		// Given
		clientID := kernel.NewUUID()
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), clientID, nil, "B", "", at(12, 0), 30, nil, "")
		require.NoError(t, err)

		clients := new(MockClientRepository)
		appts := new(MockAppointmentRepository)
		uow := newMockUoW(clients, nil, appts)
		clients.On("Get", mock.Anything, clientID).Return(nil, errs.NewObjectNotFoundError("client", clientID))

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		appts.AssertNotCalled(t, "FindOccupyingOverlapping", mock.Anything, mock.Anything)
	})

	t.Run("unknown_order", func(t *testing.T) {
		// Given
		orderID := kernel.NewUUID()
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), c.ID(), &orderID, "B", "", at(12, 0), 30, nil, "")
		require.NoError(t, err)

		clients := new(MockClientRepository)
		orders := new(MockOrderRepository)
		appts := new(MockAppointmentRepository)
		uow := newMockUoW(clients, orders, appts)
		clients.On("Get", mock.Anything, c.ID()).Return(c, nil)
		orders.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID))

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("storage_refusal_surfaces_as_conflict", func(t *testing.T) {
		// Given
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), c.ID(), nil, "B", "", at(14, 0), 30, nil, "")
		require.NoError(t, err)

		clients := new(MockClientRepository)
		appts := new(MockAppointmentRepository)
		uow := newMockUoW(clients, nil, appts)
		clients.On("Get", mock.Anything, c.ID()).Return(c, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, mock.Anything).Return(nil, nil)
		appts.On("Add", mock.Anything, mock.Anything).Return(&appointment.ConflictError{})

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, appointment.ErrSchedulingConflict)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("invalid_title_is_rejected_before_any_read", func(t *testing.T) {
		// Given
		cmd, err := commands.NewScheduleAppointmentCommand(kernel.NewUUID(), c.ID(), nil, " ", "", at(14, 0), 30, nil, "")
		require.NoError(t, err)

		uow := new(MockUoW)

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestRescheduleAppointmentCommandHandler_Handle(t *testing.T) {
	newHandler := func(uow *MockUoW, publisher ports.EventPublisher) commands.RescheduleAppointmentCommandHandler {
		return commands.NewRescheduleAppointmentCommandHandler(MockUoWFactory{uow}, services.NewConflictDetector(),
			publisher, discardLogger())
	}

	t.Run("own_window_does_not_block", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		cmd, err := commands.NewRescheduleAppointmentCommand(a.ID(), at(10, 15), 0, nil)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		publisher := new(MockPublisher)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, mock.Anything).Return([]*appointment.Appointment{a}, nil)
		appts.On("Update", mock.Anything, a).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.Event) bool {
			return len(events) == 1 && events[0].Type == ports.EventAppointmentRescheduled
		})).Return(nil).Once()

		// When
		moved, err := newHandler(uow, publisher).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, at(10, 15), moved.Start())
		assert.Equal(t, 60, moved.DurationMinutes())
		assert.Equal(t, at(11, 15), moved.EffectiveEnd())
		publisher.AssertExpectations(t)
	})

	t.Run("other_appointment_blocks", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		b := existingAppointment(t, "B", at(12, 0), 60)
		cmd, err := commands.NewRescheduleAppointmentCommand(a.ID(), at(11, 30), 60, nil)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, mock.Anything).Return([]*appointment.Appointment{b}, nil)

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		var ce *appointment.ConflictError
		require.ErrorAs(t, err, &ce)
		assert.True(t, ce.Conflict.ID().IsEqual(b.ID()))
		assert.Equal(t, at(10, 0), a.Start())
		appts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("duration_out_of_range", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		cmd, err := commands.NewRescheduleAppointmentCommand(a.ID(), at(10, 0), 5, nil)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("cancelled_appointment_moves_without_check", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		_, err := a.ChangeStatus(appointment.StatusCancelled, t0)
		require.NoError(t, err)
		cmd, err := commands.NewRescheduleAppointmentCommand(a.ID(), at(15, 0), 0, nil)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)
		appts.On("Update", mock.Anything, a).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)

		// When
		_, err = newHandler(uow, nil).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		appts.AssertNotCalled(t, "FindOccupyingOverlapping", mock.Anything, mock.Anything)
	})
}

func TestChangeAppointmentStatusCommandHandler_Handle(t *testing.T) {
	newHandler := func(uow *MockUoW) commands.ChangeAppointmentStatusCommandHandler {
		return commands.NewChangeAppointmentStatusCommandHandler(MockUoWFactory{uow}, services.NewConflictDetector(),
			nil, discardLogger())
	}

	t.Run("cancelling_needs_no_check", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		cmd, err := commands.NewChangeAppointmentStatusCommand(a.ID(), appointment.StatusCancelled)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)
		appts.On("Update", mock.Anything, a).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()

		// When
		updated, err := newHandler(uow).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCancelled, updated.Status())
		appts.AssertNotCalled(t, "FindOccupyingOverlapping", mock.Anything, mock.Anything)
	})

	t.Run("reactivating_over_a_taken_window_conflicts", func(t *testing.T) {
		// Given
		a := existingAppointment(t, "A", at(10, 0), 60)
		_, err := a.ChangeStatus(appointment.StatusCancelled, t0)
		require.NoError(t, err)
		b := existingAppointment(t, "B", at(10, 30), 30)
		cmd, err := commands.NewChangeAppointmentStatusCommand(a.ID(), appointment.StatusScheduled)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, a.ID()).Return(a, nil)
		appts.On("FindOccupyingOverlapping", mock.Anything, a.Slot().Occupied()).
			Return([]*appointment.Appointment{b}, nil)

		// When
		_, err = newHandler(uow).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, appointment.ErrSchedulingConflict)
		appts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not_found", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		cmd, err := commands.NewChangeAppointmentStatusCommand(id, appointment.StatusConfirmed)
		require.NoError(t, err)

		appts := new(MockAppointmentRepository)
		uow := newMockUoW(nil, nil, appts)
		appts.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("appointment", id))

		// When
		_, err = newHandler(uow).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestSendAppointmentRemindersCommandHandler_Handle(t *testing.T) {
	// Given
	now := at(8, 0)
	lead := 24 * time.Hour
	due := existingAppointment(t, "due", at(10, 0), 60)
	alreadyReminded := existingAppointment(t, "reminded", at(11, 0), 60)
	require.NoError(t, alreadyReminded.MarkReminderSent(now))

	cmd, err := commands.NewSendAppointmentRemindersCommand(now, lead)
	require.NoError(t, err)

	appts := new(MockAppointmentRepository)
	uow := newMockUoW(nil, nil, appts)
	publisher := new(MockPublisher)
	appts.On("FindDueForReminder", mock.Anything, now, lead).
		Return([]*appointment.Appointment{due, alreadyReminded}, nil).Once()
	appts.On("Update", mock.Anything, due).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []ports.Event) bool {
		return len(events) == 1 && events[0].Type == ports.EventAppointmentReminder &&
			events[0].AggregateID.IsEqual(due.ID())
	})).Return(nil).Once()

	// When
	h := commands.NewSendAppointmentRemindersCommandHandler(MockUoWFactory{uow}, publisher, discardLogger())
	sent, err := h.Handle(t.Context(), cmd)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, due.ReminderSent())
	appts.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSendAppointmentRemindersCommandHandler_Handle_RepositoryError(t *testing.T) {
	// Given
	cmd, err := commands.NewSendAppointmentRemindersCommand(at(8, 0), time.Hour)
	require.NoError(t, err)

	appts := new(MockAppointmentRepository)
	uow := newMockUoW(nil, nil, appts)
	appts.On("FindDueForReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	// When
	h := commands.NewSendAppointmentRemindersCommandHandler(MockUoWFactory{uow}, nil, discardLogger())
	sent, err := h.Handle(t.Context(), cmd)

	// Then
	require.EqualError(t, err, "timeout")
	assert.Zero(t, sent)
}

func TestNewSendAppointmentRemindersCommand(t *testing.T) {
	_, err := commands.NewSendAppointmentRemindersCommand(time.Time{}, time.Hour)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSendAppointmentRemindersCommand(at(8, 0), 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
