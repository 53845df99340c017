package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// @Summary Режим работы клиники
// @Description Возвращает настройки для всех семи дней недели
// @Tags Календарь
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} domain.ClinicDaySetting
// @Router /clinic_day_settings [get]
func (h *Handler) getClinicDaySettings(c *gin.Context) {
	settings, err := h.services.Calendar.ListDaySettings(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, settings)
}

// @Summary Обновление режима работы дня недели
// @Tags Календарь
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID настройки дня"
// @Param input body domain.UpdateClinicDaySettingDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /clinic_day_settings/{id} [put]
func (h *Handler) updateClinicDaySetting(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID настройки")
		return
	}

	var input domain.UpdateClinicDaySettingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Calendar.UpdateDaySetting(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "режим работы обновлен")
}

// @Summary Список выходных дат
// @Tags Календарь
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} domain.ClosedDay
// @Router /closed_days [get]
func (h *Handler) getClosedDays(c *gin.Context) {
	days, err := h.services.Calendar.ListClosedDays(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, days)
}

// @Summary Добавление выходной даты
// @Tags Календарь
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateClosedDayDTO true "Дата и причина"
// @Success 201 {object} successResponseBody "ID выходной даты"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /closed_days [post]
func (h *Handler) createClosedDay(c *gin.Context) {
	var input domain.CreateClosedDayDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Calendar.CreateClosedDay(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Удаление выходной даты
// @Tags Календарь
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID выходной даты"
// @Success 204 "Выходная дата удалена"
// @Router /closed_days/{id} [delete]
func (h *Handler) deleteClosedDay(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID выходной даты")
		return
	}

	if err := h.services.Calendar.DeleteClosedDay(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
