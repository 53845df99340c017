package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

// resolveBookingTarget определяет, на кого оформляется запись: на самого
// пациента, на его детский профиль или, для администратора, на любого
// пациента.
func (h *Handler) resolveBookingTarget(c *gin.Context, actorID int64, requested *int64) (int64, error) {
	if requested == nil || *requested == actorID {
		return actorID, nil
	}

	if isAdmin(c) {
		return *requested, nil
	}

	target, err := h.services.User.GetByID(c.Request.Context(), *requested)
	if err != nil {
		return 0, errors.New("пациент не найден")
	}
	if target.ParentID == nil || *target.ParentID != actorID {
		return 0, errors.New("запись на этого пациента недоступна")
	}

	return *requested, nil
}

// @Summary Создание записи на прием
// @Description Проверяет доступность времени и создает запись
// @Tags Записи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} successResponseBody "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Время недоступно"
// @Failure 409 {object} errorResponseBody "Слот занят конкурентной записью"
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	targetID, err := h.resolveBookingTarget(c, actorID, input.UserID)
	if err != nil {
		forbiddenResponse(c, err.Error())
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), targetID, input)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			errorResponse(c, http.StatusConflict, err.Error())
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Список записей
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param dentist_id query int false "ID врача"
// @Param status query string false "Статус" Enums(scheduled, completed, cancelled)
// @Param date_from query string false "Начало периода (YYYY-MM-DD)"
// @Param date_to query string false "Конец периода (YYYY-MM-DD)"
// @Param limit query int false "Количество на странице" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.AppointmentFilter{}

	// Пациент видит только свои записи; администратор — любые.
	if !isAdmin(c) {
		filter.UserID = &actorID
	} else if userIDStr := c.Query("user_id"); userIDStr != "" {
		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err == nil {
			filter.UserID = &userID
		}
	}

	if dentistIDStr := c.Query("dentist_id"); dentistIDStr != "" {
		dentistID, err := strconv.ParseInt(dentistIDStr, 10, 64)
		if err == nil {
			filter.DentistID = &dentistID
		}
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		filter.Status = &status
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		parsed, err := time.Parse("2006-01-02", dateFrom)
		if err == nil {
			filter.StartDate = &parsed
		}
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		parsed, err := time.Parse("2006-01-02", dateTo)
		if err == nil {
			parsed = parsed.Add(24*time.Hour - time.Second)
			filter.EndDate = &parsed
		}
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

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Запись по ID
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !isAdmin(c) {
		if !h.ownsAppointment(c, appointment) {
			forbiddenResponse(c)
			return
		}
	}

	successResponse(c, http.StatusOK, appointment)
}

func (h *Handler) ownsAppointment(c *gin.Context, appointment *domain.Appointment) bool {
	actorID, err := getUserID(c)
	if err != nil {
		return false
	}

	if appointment.UserID == actorID {
		return true
	}

	owner, err := h.services.User.GetByID(c.Request.Context(), appointment.UserID)
	if err != nil {
		return false
	}

	return owner.ParentID != nil && *owner.ParentID == actorID
}

// @Summary Обновление записи
// @Description Переносит запись с повторной проверкой доступности
// @Tags Записи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Время недоступно"
// @Failure 409 {object} errorResponseBody "Слот занят конкурентной записью"
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !isAdmin(c) && !h.ownsAppointment(c, appointment) {
		forbiddenResponse(c)
		return
	}

	var input domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	// Менять статус напрямую может только администратор; пациент отменяет
	// запись отдельным запросом.
	if input.Status != nil && !isAdmin(c) {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			errorResponse(c, http.StatusConflict, err.Error())
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "запись обновлена")
}

// @Summary Отмена записи
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	if !isAdmin(c) && !h.ownsAppointment(c, appointment) {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "запись отменена")
}

// @Summary Отметка прихода пациента
// @Description Отмечает, что пациент пришел на прием
// @Tags Записи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Запись не запланирована"
// @Router /appointments/{id}/check_in [patch]
func (h *Handler) checkInAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID записи")
		return
	}

	if err := h.services.Appointment.CheckIn(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "приход пациента отмечен")
}
