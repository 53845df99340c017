package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// @Summary Список напоминаний
// @Tags Напоминания
// @Security ApiKeyAuth
// @Produce json
// @Param appointment_id query int false "ID записи"
// @Param sent query bool false "Фильтр по статусу отправки"
// @Param limit query int false "Количество на странице" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /appointment_reminders [get]
func (h *Handler) getReminders(c *gin.Context) {
	filter := domain.ReminderFilter{}

	if appointmentIDStr := c.Query("appointment_id"); appointmentIDStr != "" {
		appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
		if err == nil {
			filter.AppointmentID = &appointmentID
		}
	}

	if sentStr := c.Query("sent"); sentStr != "" {
		sent := sentStr == "true"
		filter.Sent = &sent
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit = limit
	filter.Offset = offset

	reminders, total, err := h.services.Reminder.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, reminders, total, page, limit)
}

// @Summary Обновление напоминания
// @Description Позволяет вручную пометить напоминание отправленным или вернуть в очередь
// @Tags Напоминания
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID напоминания"
// @Param input body domain.UpdateReminderDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /appointment_reminders/{id} [put]
func (h *Handler) updateReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID напоминания")
		return
	}

	var input domain.UpdateReminderDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Reminder.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "напоминание обновлено")
}
