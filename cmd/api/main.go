package main

import (
	"careplus/cmd/internal/config"
	"careplus/cmd/internal/domain/sqlite"
	"careplus/cmd/internal/domain/sqlite/repository"
	"careplus/cmd/internal/records"
	"careplus/cmd/internal/routes"
	"careplus/cmd/internal/service"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	// .env is optional; absence just means plain environment config.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", err)
	}

	utils.InitJWT(cfg.JWTSecret, cfg.TokenTTL)

	// Init SQLite-backed snapshot storage
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Record store: restore collections from snapshots or seed them
	store := records.NewStore(repository.NewSnapshotRepository(db))
	if err := store.Load(); err != nil {
		log.Fatal("failed to load record store", err)
	}

	// Getting services
	userService := service.NewUserService(store, validate)
	sessionService := service.NewSessionService(store, validate)
	apptService := service.NewAppointmentService(store, validate, cfg.Slots)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	sessionRoutes := routes.NewSessionDefault(sessionService)
	apptRoutes := routes.NewAppointmentDefault(apptService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Users
	e.POST("/api/users", userRoutes.Register)
	e.GET("/api/users", userRoutes.GetUsers)
	e.DELETE("/api/users/:id", userRoutes.DeleteUser)
	e.GET("/api/doctors", userRoutes.GetDoctors)

	// Session
	e.POST("/api/users/login", sessionRoutes.Login)
	e.POST("/api/users/logout", sessionRoutes.Logout)
	e.GET("/api/session", sessionRoutes.GetSession)

	// Appointments
	e.GET("/api/appointments", apptRoutes.GetAppointments)
	e.POST("/api/appointments", apptRoutes.CreateAppointment)
	e.PATCH("/api/appointments/:id/status", apptRoutes.UpdateStatus)

	// Pseudo-entity "Calendar" to check slot availability before booking
	e.GET("/api/calendar", apptRoutes.GetCalendar)

	err = e.Start(cfg.HTTPAddr)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("isodate", validators.IsIsoDate)
	_ = validate.RegisterValidation("timeslot", validators.IsTimeSlot)
}
