package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"repairshop/internal/core/application/usecases/commands"
	"repairshop/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockRemindersHandler struct{ mock.Mock }

func (m *MockRemindersHandler) Handle(ctx context.Context, cmd commands.SendAppointmentRemindersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) RemindersSent(n int) {
	m.Called(n)
}

func TestReminderJob_RunOnceRecordsSent(t *testing.T) {
	handler := new(MockRemindersHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SendAppointmentRemindersCommand) bool {
		return cmd.Lead() == 24*time.Hour
	})).Return(3, nil)
	recorder := new(MockRecorder)
	recorder.On("RemindersSent", 3).Return()

	job := jobs.NewReminderJob(handler, recorder, "", 24*time.Hour, discardLogger())
	job.RunOnce(t.Context())

	handler.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestReminderJob_RunOnceKeepsPartialCountOnError(t *testing.T) {
	handler := new(MockRemindersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("connection reset"))
	recorder := new(MockRecorder)
	recorder.On("RemindersSent", 1).Return()

	job := jobs.NewReminderJob(handler, recorder, "", time.Hour, discardLogger())
	job.RunOnce(t.Context())

	recorder.AssertExpectations(t)
}

func TestReminderJob_NothingDue(t *testing.T) {
	handler := new(MockRemindersHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil)
	recorder := new(MockRecorder)

	job := jobs.NewReminderJob(handler, recorder, "", time.Hour, discardLogger())
	job.RunOnce(t.Context())

	recorder.AssertNotCalled(t, "RemindersSent", mock.Anything)
}

func TestReminderJob_InvalidLeadNeverCallsHandler(t *testing.T) {
	handler := new(MockRemindersHandler)

	job := jobs.NewReminderJob(handler, nil, "", 0, discardLogger())
	job.RunOnce(t.Context())

	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestReminderJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewReminderJob(new(MockRemindersHandler), nil, "every now and then", time.Hour, discardLogger())

	require.Error(t, job.Start())
}

func TestReminderJob_StartStop(t *testing.T) {
	job := jobs.NewReminderJob(new(MockRemindersHandler), nil, "0 0 3 * * *", time.Hour, discardLogger())

	require.NoError(t, job.Start())
	job.Stop()
	assert.Equal(t, "reminder", job.Name())
}
