package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

func TestCalendarUpdateDaySetting_Validation(t *testing.T) {
	calendar := newFakeCalendarRepo()
	calendar.openDay(1, "08:00", "17:00")
	svc := NewCalendarService(calendar, zap.NewNop())

	cases := []struct {
		name    string
		dto     domain.UpdateClinicDaySettingDTO
		wantErr bool
	}{
		{
			name: "корректный сдвиг часов",
			dto: domain.UpdateClinicDaySettingDTO{
				OpenTime:  PointerTo("09:00"),
				CloseTime: PointerTo("18:00"),
			},
		},
		{
			name: "открытие не раньше закрытия",
			dto: domain.UpdateClinicDaySettingDTO{
				OpenTime:  PointerTo("18:00"),
				CloseTime: PointerTo("09:00"),
			},
			wantErr: true,
		},
		{
			name:    "мусор вместо времени открытия",
			dto:     domain.UpdateClinicDaySettingDTO{OpenTime: PointerTo("9am")},
			wantErr: true,
		},
		{
			name:    "мусор вместо времени закрытия",
			dto:     domain.UpdateClinicDaySettingDTO{CloseTime: PointerTo("25:00")},
			wantErr: true,
		},
		{
			name: "закрытие дня без указания часов",
			dto:  domain.UpdateClinicDaySettingDTO{IsOpen: PointerTo(false)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.UpdateDaySetting(context.Background(), 2, tc.dto)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalendarCreateClosedDay(t *testing.T) {
	calendar := newFakeCalendarRepo()
	svc := NewCalendarService(calendar, zap.NewNop())

	id, err := svc.CreateClosedDay(context.Background(), domain.CreateClosedDayDTO{
		Date:   "2026-07-21",
		Reason: "День освобождения Гуама",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Повторное добавление той же даты отклоняется.
	_, err = svc.CreateClosedDay(context.Background(), domain.CreateClosedDayDTO{Date: "2026-07-21"})
	assert.Error(t, err)

	_, err = svc.CreateClosedDay(context.Background(), domain.CreateClosedDayDTO{Date: "21.07.2026"})
	assert.Error(t, err)
}

func TestUnavailabilityCreate_Validation(t *testing.T) {
	dentists := &fakeDentistRepo{dentists: map[int64]*domain.Dentist{
		1: {ID: 1, FirstName: "Иван", LastName: "Петров"},
	}}
	repo := &fakeUnavailabilityRepo{}
	svc := NewUnavailabilityService(repo, dentists, zap.NewNop())

	valid := domain.CreateUnavailabilityDTO{
		DentistID: 1,
		Date:      "2026-03-02",
		StartTime: "12:00",
		EndTime:   "13:00",
		Reason:    "обед",
	}

	id, err := svc.Create(context.Background(), valid)
	require.NoError(t, err)
	assert.NotZero(t, id)

	unknownDentist := valid
	unknownDentist.DentistID = 99
	_, err = svc.Create(context.Background(), unknownDentist)
	assert.Error(t, err)

	badDate := valid
	badDate.Date = "02.03.2026"
	_, err = svc.Create(context.Background(), badDate)
	assert.Error(t, err)

	inverted := valid
	inverted.StartTime = "14:00"
	_, err = svc.Create(context.Background(), inverted)
	assert.Error(t, err)

	empty := valid
	empty.StartTime = "13:00"
	_, err = svc.Create(context.Background(), empty)
	assert.Error(t, err)
}

func TestUnavailabilityUpdate_ChecksMergedInterval(t *testing.T) {
	dentists := &fakeDentistRepo{dentists: map[int64]*domain.Dentist{
		1: {ID: 1},
	}}
	repo := &fakeUnavailabilityRepo{}
	svc := NewUnavailabilityService(repo, dentists, zap.NewNop())

	id, err := svc.Create(context.Background(), domain.CreateUnavailabilityDTO{
		DentistID: 1,
		Date:      "2026-03-02",
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)

	// Новый конец раньше существующего начала.
	err = svc.Update(context.Background(), id, domain.UpdateUnavailabilityDTO{
		EndTime: PointerTo("11:00"),
	})
	assert.Error(t, err)

	err = svc.Update(context.Background(), id, domain.UpdateUnavailabilityDTO{
		EndTime: PointerTo("14:00"),
	})
	assert.NoError(t, err)
}
