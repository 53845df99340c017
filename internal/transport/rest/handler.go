package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"isadental/config"
	"isadental/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			users.GET("/my_children", h.getMyChildren)
			users.POST("/my_children", h.createChild)
			users.PUT("/my_children/:id", h.updateChild)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.GET("/children", h.getAllChildren)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		dentists := api.Group("/dentists")
		{
			dentists.GET("/", h.getDentists)
			dentists.GET("/:id", h.getDentistByID)
			dentists.GET("/:id/day_appointments", h.getDayAppointments)

			admin := dentists.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createDentist)
				admin.PUT("/:id", h.updateDentist)
				admin.DELETE("/:id", h.deleteDentist)
				admin.POST("/:id/image", h.uploadDentistImage)
			}
		}

		specialties := api.Group("/specialties")
		{
			specialties.GET("/", h.getSpecialties)
			specialties.GET("/:id", h.getSpecialtyByID)

			admin := specialties.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSpecialty)
				admin.PUT("/:id", h.updateSpecialty)
				admin.DELETE("/:id", h.deleteSpecialty)
			}
		}

		appointmentTypes := api.Group("/appointment_types")
		{
			appointmentTypes.GET("/", h.getAppointmentTypes)
			appointmentTypes.GET("/:id", h.getAppointmentTypeByID)

			admin := appointmentTypes.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createAppointmentType)
				admin.PUT("/:id", h.updateAppointmentType)
				admin.DELETE("/:id", h.deleteAppointmentType)
			}
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.createAppointment)
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.DELETE("/:id", h.cancelAppointment)

			appointments.PATCH("/:id/check_in", h.adminMiddleware(), h.checkInAppointment)
		}

		api.GET("/schedule", h.authMiddleware(), h.getScheduleSnapshot)

		calendar := api.Group("/", h.authMiddleware(), h.adminMiddleware())
		{
			calendar.GET("/clinic_day_settings", h.getClinicDaySettings)
			calendar.PUT("/clinic_day_settings/:id", h.updateClinicDaySetting)

			calendar.GET("/closed_days", h.getClosedDays)
			calendar.POST("/closed_days", h.createClosedDay)
			calendar.DELETE("/closed_days/:id", h.deleteClosedDay)

			calendar.GET("/dentist_unavailabilities", h.getUnavailabilities)
			calendar.POST("/dentist_unavailabilities", h.createUnavailability)
			calendar.PUT("/dentist_unavailabilities/:id", h.updateUnavailability)
			calendar.DELETE("/dentist_unavailabilities/:id", h.deleteUnavailability)

			calendar.GET("/appointment_reminders", h.getReminders)
			calendar.PUT("/appointment_reminders/:id", h.updateReminder)
		}
	}
}
