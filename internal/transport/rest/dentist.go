package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/internal/domain"
)

const maxImageSize = 5 << 20 // 5 МБ

// @Summary Список врачей
// @Tags Врачи
// @Produce json
// @Param limit query int false "Количество на странице" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Router /dentists [get]
func (h *Handler) getDentists(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	dentists, total, err := h.services.Dentist.List(c.Request.Context(), limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, dentists, total, page, limit)
}

// @Summary Врач по ID
// @Tags Врачи
// @Produce json
// @Param id path int true "ID врача"
// @Success 200 {object} domain.Dentist
// @Failure 404 {object} errorResponseBody "Врач не найден"
// @Router /dentists/{id} [get]
func (h *Handler) getDentistByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	dentist, err := h.services.Dentist.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, dentist)
}

// @Summary Создание врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateDentistDTO true "Данные врача"
// @Success 201 {object} successResponseBody "ID созданного врача"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /dentists [post]
func (h *Handler) createDentist(c *gin.Context) {
	var input domain.CreateDentistDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Dentist.Create(c.Request.Context(), input)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновление врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID врача"
// @Param input body domain.UpdateDentistDTO true "Данные для обновления"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /dentists/{id} [put]
func (h *Handler) updateDentist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	var input domain.UpdateDentistDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Dentist.Update(c.Request.Context(), id, input); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "врач обновлен")
}

// @Summary Удаление врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID врача"
// @Success 204 "Врач удален"
// @Router /dentists/{id} [delete]
func (h *Handler) deleteDentist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	if err := h.services.Dentist.Delete(c.Request.Context(), id); err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	noContentResponse(c)
}

// @Summary Загрузка фото врача
// @Tags Врачи
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID врача"
// @Param image formData file true "Изображение"
// @Success 200 {object} successResponseBody "URL загруженного фото"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Router /dentists/{id}/image [post]
func (h *Handler) uploadDentistImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "некорректный ID врача")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		badRequestResponse(c, "файл изображения не передан")
		return
	}

	if fileHeader.Size > maxImageSize {
		badRequestResponse(c, "размер изображения превышает 5 МБ")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	imageURL, err := h.services.Dentist.UploadImage(c.Request.Context(), id, data, fileHeader.Filename)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"image_url": imageURL,
	})
}
