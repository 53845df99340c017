package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

var errSendFailed = errors.New("канал доставки недоступен")

func TestReminderDeriveSendTimes(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, clinicLocation, zap.NewNop())

	// Прием 2 марта 14:00 по местному времени клиники (UTC+10).
	appointmentTime := time.Date(2026, 3, 2, 14, 0, 0, 0, clinicLocation)
	dayBefore, dayOf := svc.DeriveSendTimes(appointmentTime)

	// 08:00 местного = 22:00 UTC предыдущих суток.
	assert.Equal(t, time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC), dayOf)
	assert.Equal(t, time.Date(2026, 2, 28, 22, 0, 0, 0, time.UTC), dayBefore)
	assert.Equal(t, time.UTC, dayOf.Location())
}

func TestReminderDeriveSendTimes_UTCInputSameInstant(t *testing.T) {
	svc := NewReminderService(&fakeReminderRepo{}, clinicLocation, zap.NewNop())

	local := time.Date(2026, 3, 2, 14, 0, 0, 0, clinicLocation)
	fromLocal, _ := svc.DeriveSendTimes(local)
	fromUTC, _ := svc.DeriveSendTimes(local.UTC())

	assert.True(t, fromLocal.Equal(fromUTC))
}

func TestReminderCreateForAppointment(t *testing.T) {
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo, clinicLocation, zap.NewNop())

	appointmentTime := time.Date(2026, 3, 2, 14, 0, 0, 0, clinicLocation)
	err := svc.CreateForAppointment(context.Background(), 9, appointmentTime)

	require.NoError(t, err)
	require.Len(t, repo.reminders, 2)
	assert.True(t, repo.reminders[0].SendAt.Before(repo.reminders[1].SendAt))
	for _, reminder := range repo.reminders {
		assert.Equal(t, int64(9), reminder.AppointmentID)
	}
}

func TestReminderResetForAppointment(t *testing.T) {
	repo := &fakeReminderRepo{}
	svc := NewReminderService(repo, clinicLocation, zap.NewNop())

	oldTime := time.Date(2026, 3, 2, 14, 0, 0, 0, clinicLocation)
	require.NoError(t, svc.CreateForAppointment(context.Background(), 9, oldTime))

	newTime := oldTime.AddDate(0, 0, 3)
	require.NoError(t, svc.ResetForAppointment(context.Background(), 9, newTime))

	assert.Contains(t, repo.deletedFor, int64(9))
	require.Len(t, repo.reminders, 2)
	_, dayOf := svc.DeriveSendTimes(newTime)
	assert.True(t, repo.reminders[1].SendAt.Equal(dayOf))
}

func TestReminderDispatchDue_MarksSent(t *testing.T) {
	now := time.Date(2026, 3, 2, 22, 5, 0, 0, time.UTC)
	repo := &fakeReminderRepo{
		due: []domain.AppointmentReminder{
			{ID: 1, AppointmentID: 9, SendAt: now.Add(-5 * time.Minute)},
			{ID: 2, AppointmentID: 9, SendAt: now.Add(time.Hour)},
		},
	}
	svc := NewReminderService(repo, clinicLocation, zap.NewNop())

	err := svc.DispatchDue(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, repo.markedSent)
}

func TestReminderDispatchDue_SendFailureDoesNotMarkSent(t *testing.T) {
	now := time.Date(2026, 3, 2, 22, 5, 0, 0, time.UTC)
	repo := &fakeReminderRepo{
		due: []domain.AppointmentReminder{
			{ID: 1, AppointmentID: 9, SendAt: now.Add(-10 * time.Minute)},
			{ID: 2, AppointmentID: 10, SendAt: now.Add(-5 * time.Minute)},
		},
	}
	svc := NewReminderService(repo, clinicLocation, zap.NewNop())

	sender := &failingSender{failIDs: map[int64]bool{1: true}}
	svc.SetSender(sender)

	err := svc.DispatchDue(context.Background(), now)

	// Сбой одного напоминания не останавливает отправку остальных.
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.markedSent)
	assert.Equal(t, []int64{2}, sender.sent)
}
