package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// @Summary Список блокировок времени врачей
// @Tags Календарь
// @Security ApiKeyAuth
// @Produce json
// @Param dentist_id query int false "ID врача"
// @Param date query string false "Дата (YYYY-MM-DD)"
// @Success 200 {array} domain.DentistUnavailability
// @Router /dentist_unavailabilities [get]
func (h *Handler) getUnavailabilities(c *gin.Context) {
	filter := domain.UnavailabilityFilter{}

	if dentistIDStr := c.Query("dentist_id"); dentistIDStr != "" {
		dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
		if err == nil {
			filter.DentistID = &dentistID
		}
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			badRequestResponse(c, "некорректный формат даты, ожидается YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	unavailabilities, err := h.services.Unavailability.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, unavailabilities)
}

// @Summary Создание блокировки времени врача
// @Description Блокирует интервал, в котором врач не принимает
// @Tags Календарь
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateUnavailabilityDTO true "Данные блокировки"
// @Success 201 {object} successResponseBody "ID блокировки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /dentist_unavailabilities [post]
func (h *Handler) createUnavailability(c *gin.Context) {
	var input domain.CreateUnavailabilityDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Unavailability.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление блокировки
// @Tags Календарь
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID блокировки"
// @Param input body domain.UpdateUnavailabilityDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /dentist_unavailabilities/{id} [put]
func (h *Handler) updateUnavailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID блокировки")
		return
	}

	var input domain.UpdateUnavailabilityDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Unavailability.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "блокировка обновлена")
}

// @Summary Удаление блокировки
// @Tags Календарь
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID блокировки"
// @Success 204 "Блокировка удалена"
// @Router /dentist_unavailabilities/{id} [delete]
func (h *Handler) deleteUnavailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID блокировки")
		return
	}

	if err := h.services.Unavailability.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
