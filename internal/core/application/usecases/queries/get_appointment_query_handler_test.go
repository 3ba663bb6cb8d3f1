package queries_test

import (
	"context"
	"testing"

	"repairshop/internal/core/application/usecases/queries"
	"repairshop/internal/core/domain/model/appointment"
	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAppointmentGetter struct{ mock.Mock }

func (m *MockAppointmentGetter) Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func TestGetAppointmentQueryHandler_Found(t *testing.T) {
	// Given
	a := booked(t, "Battery swap", at(10, 0), 45)
	getter := new(MockAppointmentGetter)
	getter.On("Get", mock.Anything, a.ID()).Return(a, nil)
	query, err := queries.NewGetAppointmentQuery(a.ID())
	require.NoError(t, err)

	// When
	view, err := queries.NewGetAppointmentQueryHandler(getter).Handle(t.Context(), query)

	// Then
	require.NoError(t, err)
	assert.Equal(t, a.ID(), view.ID)
	assert.Equal(t, "Battery swap", view.Title)
	assert.Equal(t, 45, view.DurationMinutes)
	assert.Equal(t, at(10, 45), view.EffectiveEnd)
	assert.Equal(t, appointment.StatusScheduled, view.Status)
	getter.AssertExpectations(t)
}

func TestGetAppointmentQueryHandler_NotFound(t *testing.T) {
	// Given
	id := kernel.NewUUID()
	getter := new(MockAppointmentGetter)
	getter.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("appointment", id.String()))
	query, err := queries.NewGetAppointmentQuery(id)
	require.NoError(t, err)

	// When
	_, err = queries.NewGetAppointmentQueryHandler(getter).Handle(t.Context(), query)

	// Then
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewGetAppointmentQuery(t *testing.T) {
	_, err := queries.NewGetAppointmentQuery(kernel.UUID{})
	require.Error(t, err)

	var q queries.GetAppointmentQuery
	require.ErrorIs(t, q.Validate(), queries.ErrGetAppointmentQueryIsNotConstructed)

	_, err = queries.NewGetAppointmentQueryHandler(new(MockAppointmentGetter)).Handle(t.Context(), q)
	require.ErrorIs(t, err, queries.ErrGetAppointmentQueryIsNotConstructed)
}
