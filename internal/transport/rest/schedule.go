package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// dentistDaySchedule — занятость одного врача в снимке расписания клиники.
type dentistDaySchedule struct {
	Dentist      domain.Dentist      `json:"dentist"`
	Appointments []domain.DayBooking `json:"appointments"`
}

type scheduleSnapshot struct {
	Date      string               `json:"date"`
	ClosedDay bool                 `json:"closed_day"`
	Dentists  []dentistDaySchedule `json:"dentists"`
}

// @Summary Занятость врача на день
// @Description Возвращает занятые интервалы врача; для закрытого дня расписание не выбирается
// @Tags Расписание
// @Produce json
// @Param id path int true "ID врача"
// @Param date query string true "Дата (YYYY-MM-DD)"
// @Param exclude_appointment_id query int false "ID записи, исключаемой из выборки (при переносе)"
// @Success 200 {object} domain.DaySchedule
// @Failure 400 {object} errorResponseBody "Некорректная дата"
// @Router /dentists/{id}/day_appointments [get]
func (h *Handler) getDayAppointments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "не указана дата")
		return
	}

	var excludeID *int64
	if excludeStr := c.Query("exclude_appointment_id"); excludeStr != "" {
		parsed, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "некорректный ID исключаемой записи")
			return
		}
		excludeID = &parsed
	}

	schedule, err := h.services.Availability.DayBookings(c.Request.Context(), id, date, excludeID)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Снимок расписания клиники
// @Description Возвращает занятость всех врачей на дату
// @Tags Расписание
// @Security ApiKeyAuth
// @Produce json
// @Param date query string false "Дата (YYYY-MM-DD), по умолчанию сегодня"
// @Success 200 {object} scheduleSnapshot
// @Failure 400 {object} errorResponseBody "Некорректная дата"
// @Router /schedule [get]
func (h *Handler) getScheduleSnapshot(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	dentists, _, err := h.services.Dentist.List(c.Request.Context(), 100, 0)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	snapshot := scheduleSnapshot{
		Date:     date,
		Dentists: make([]dentistDaySchedule, 0, len(dentists)),
	}

	for _, dentist := range dentists {
		schedule, err := h.services.Availability.DayBookings(c.Request.Context(), dentist.ID, date, nil)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}

		if schedule.ClosedDay {
			snapshot.ClosedDay = true
			break
		}

		snapshot.Dentists = append(snapshot.Dentists, dentistDaySchedule{
			Dentist:      dentist,
			Appointments: schedule.Appointments,
		})
	}

	if snapshot.ClosedDay {
		snapshot.Dentists = nil
		h.logger.Debug("снимок расписания для закрытого дня", zap.String("date", date))
	}

	successResponse(c, http.StatusOK, snapshot)
}
