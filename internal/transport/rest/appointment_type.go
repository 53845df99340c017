package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// @Summary Список типов приема
// @Tags Типы приема
// @Produce json
// @Success 200 {array} domain.AppointmentType
// @Router /appointment_types [get]
func (h *Handler) getAppointmentTypes(c *gin.Context) {
	types, err := h.services.AppointmentType.List(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, types)
}

// @Summary Тип приема по ID
// @Tags Типы приема
// @Produce json
// @Param id path int true "ID типа приема"
// @Success 200 {object} domain.AppointmentType
// @Failure 404 {object} errorResponseBody "Тип приема не найден"
// @Router /appointment_types/{id} [get]
func (h *Handler) getAppointmentTypeByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID типа приема")
		return
	}

	appointmentType, err := h.services.AppointmentType.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, appointmentType)
}

// @Summary Создание типа приема
// @Tags Типы приема
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentTypeDTO true "Данные типа приема"
// @Success 201 {object} successResponseBody "ID созданного типа"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /appointment_types [post]
func (h *Handler) createAppointmentType(c *gin.Context) {
	var input domain.CreateAppointmentTypeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.AppointmentType.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление типа приема
// @Description Новая длительность применяется ко всем будущим проверкам доступности
// @Tags Типы приема
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID типа приема"
// @Param input body domain.UpdateAppointmentTypeDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /appointment_types/{id} [put]
func (h *Handler) updateAppointmentType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID типа приема")
		return
	}

	var input domain.UpdateAppointmentTypeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.AppointmentType.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "тип приема обновлен")
}

// @Summary Удаление типа приема
// @Tags Типы приема
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID типа приема"
// @Success 204 "Тип приема удален"
// @Router /appointment_types/{id} [delete]
func (h *Handler) deleteAppointmentType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID типа приема")
		return
	}

	if err := h.services.AppointmentType.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}
