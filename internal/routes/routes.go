package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/config"
	"github.com/BruksfildServices01/turnera-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/lock"
	"github.com/BruksfildServices01/turnera-api/internal/logger"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
	"github.com/BruksfildServices01/turnera-api/internal/timezone"
	"github.com/BruksfildServices01/turnera-api/internal/token"
	ucAppointment "github.com/BruksfildServices01/turnera-api/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/turnera-api/internal/usecase/auth"
	"github.com/BruksfildServices01/turnera-api/internal/validators"
)

// Deps are the process-wide singletons built by the serve command.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client // nil when REDIS_ADDR is unset
	Config *config.Config
	Audit  *audit.Dispatcher
}

const (
	admin      = access.RoleAdmin
	doctor     = access.RoleDoctor
	secretaria = access.RoleSecretaria
	paciente   = access.RolePaciente
)

func RegisterRoutes(r *gin.Engine, deps Deps) {
	db, cfg, auditDispatcher := deps.DB, deps.Config, deps.Audit
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	userRepo := infraRepo.NewUserGormRepository(db)

	doctorStore := infraRepo.NewDoctorStore(db)
	patientStore := infraRepo.NewPatientStore(db)
	officeStore := infraRepo.NewOfficeStore(db)
	specialtyStore := infraRepo.NewSpecialtyStore(db)
	coverageStore := infraRepo.NewCoverageStore(db)
	insurerStore := infraRepo.NewInsurerStore(db)
	scheduleStore := infraRepo.NewScheduleStore(db)

	var locker lock.Locker = lock.NewLocalLocker()
	if deps.Redis != nil {
		locker = lock.NewRedisLocker(deps.Redis, cfg.LockTTL)
	}

	tokens := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	archiver := logger.NewArchiver(logger.ArchiveConfig{
		Bucket:    cfg.LogArchiveBucket,
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		Endpoint:  cfg.S3Endpoint,
	})

	// ======================================================
	// USE CASES - AUTH
	// ======================================================
	validateUC := ucAuth.NewValidate(userRepo)
	registerUC := ucAuth.NewRegister(userRepo, tokens, cfg.BcryptCost, auditDispatcher)
	if cfg.VerifyEmailDomain {
		registerUC.WithDomainCheck(validators.EmailDomainResolves)
	}
	loginUC := ucAuth.NewLogin(userRepo, tokens, auditDispatcher)
	meUC := ucAuth.NewMe(validateUC)
	updateUserUC := ucAuth.NewUpdateUser(userRepo, cfg.BcryptCost, auditDispatcher)

	// ======================================================
	// USE CASES - APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
		ucAppointment.Options{
			Location: loc,
			Strict:   cfg.StrictSlotExclusivity,
		},
	)
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, meUC)
	userHandler := handlers.NewUserHandler(userRepo.Store(), registerUC, updateUserUC, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		ucAppointment.NewGetAppointment(appointmentRepo),
		ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher, loc),
		ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewSoftDeleteAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewRestoreAppointment(appointmentRepo, auditDispatcher),
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo, loc),
		loc,
	)

	doctorHandler := handlers.NewDoctorHandler(doctorStore, specialtyStore, auditDispatcher)
	patientHandler := handlers.NewPatientHandler(patientStore, insurerStore, coverageStore, auditDispatcher)
	officeHandler := handlers.NewOfficeHandler(officeStore, auditDispatcher)
	specialtyHandler := handlers.NewSpecialtyHandler(specialtyStore, auditDispatcher)
	coverageHandler := handlers.NewCoverageHandler(coverageStore, auditDispatcher)
	insurerHandler := handlers.NewInsurerHandler(insurerStore, coverageStore, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(
		scheduleStore,
		doctorStore,
		officeStore,
		getAvailabilityUC,
		auditDispatcher,
		loc,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)
	logsHandler := handlers.NewLogsHandler(cfg.LogFile, archiver, auditDispatcher)
	healthHandler := handlers.NewHealthHandler(db, deps.Redis)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	authMW := middleware.AuthMiddleware(tokens, validateUC)
	roles := middleware.RequireRoles

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authMW, authHandler.Me)
	}

	private := api.Group("")
	private.Use(authMW)

	// ======================================================
	// TURNOS
	// ======================================================
	turnos := private.Group("/turnos")
	{
		turnos.POST("", roles(admin, secretaria, paciente), appointmentHandler.Create)
		turnos.GET("", roles(admin, secretaria), appointmentHandler.List)
		turnos.GET("/inactivos", roles(admin), appointmentHandler.ListInactive)
		turnos.GET("/mis-turnos", roles(doctor, paciente), appointmentHandler.ListMine)
		turnos.GET("/estado/:estado", roles(admin, secretaria, doctor), appointmentHandler.ListByState)
		turnos.GET("/paciente/:dni", roles(admin, secretaria), appointmentHandler.ListByPatient)
		turnos.GET("/doctor/:id", roles(admin, secretaria, doctor), appointmentHandler.ListByDoctor)
		turnos.GET("/fecha", roles(admin, secretaria, doctor), appointmentHandler.ListByDate)
		turnos.GET("/rango", roles(admin, secretaria, doctor), appointmentHandler.ListByRange)
		turnos.GET("/:id", roles(access.AllRoles...), appointmentHandler.Get)
		turnos.PATCH("/:id", roles(admin, secretaria), appointmentHandler.Update)
		turnos.PATCH("/:id/confirmar", roles(admin, secretaria, doctor), appointmentHandler.Confirm)
		turnos.PATCH("/:id/cancelar", roles(access.AllRoles...), appointmentHandler.Cancel)
		turnos.PATCH("/:id/completar", roles(admin, secretaria, doctor), appointmentHandler.Complete)
		turnos.PATCH("/:id/restaurar", roles(admin), appointmentHandler.Restore)
		turnos.DELETE("/:id", roles(admin, secretaria), appointmentHandler.Delete)
	}

	// ======================================================
	// DOCTORES
	// ======================================================
	doctores := private.Group("/doctores")
	{
		doctores.POST("", roles(admin, secretaria), doctorHandler.Create)
		doctores.GET("", roles(admin, secretaria, doctor), doctorHandler.List)
		doctores.GET("/activos", roles(admin, secretaria, doctor), doctorHandler.ListActive)
		doctores.GET("/:id", roles(admin, secretaria, doctor), doctorHandler.Get)
		doctores.PATCH("/:id", roles(admin, secretaria), doctorHandler.Update)
		doctores.DELETE("/:id", roles(admin), doctorHandler.Delete)
		doctores.PATCH("/:id/restaurar", roles(admin), doctorHandler.Restore)
	}

	// ======================================================
	// PACIENTES
	// ======================================================
	pacientes := private.Group("/pacientes")
	{
		pacientes.POST("", roles(admin, doctor, secretaria), patientHandler.Create)
		pacientes.GET("", roles(admin, doctor, secretaria), patientHandler.List)
		pacientes.GET("/activos", roles(admin, doctor, secretaria), patientHandler.ListActive)
		pacientes.GET("/:dni", roles(admin, doctor, secretaria), patientHandler.Get)
		pacientes.PATCH("/:dni", roles(admin, doctor, secretaria), patientHandler.Update)
		pacientes.DELETE("/:dni", roles(admin), patientHandler.Delete)
		pacientes.PATCH("/:dni/restaurar", roles(admin), patientHandler.Restore)
	}

	// ======================================================
	// CONSULTORIOS
	// ======================================================
	consultorios := private.Group("/consultorios")
	{
		consultorios.POST("", roles(admin, secretaria), officeHandler.Create)
		consultorios.GET("", roles(access.AllRoles...), officeHandler.List)
		consultorios.GET("/activos", roles(access.AllRoles...), officeHandler.ListActive)
		consultorios.GET("/inactivos", roles(admin), officeHandler.ListInactive)
		consultorios.GET("/:id", roles(access.AllRoles...), officeHandler.Get)
		consultorios.PATCH("/:id", roles(admin, secretaria), officeHandler.Update)
		consultorios.DELETE("/:id", roles(admin), officeHandler.Delete)
		consultorios.PATCH("/:id/restaurar", roles(admin), officeHandler.Restore)
	}

	// ======================================================
	// ESPECIALIDADES / COBERTURAS
	// ======================================================
	especialidades := private.Group("/especialidades")
	{
		especialidades.POST("", roles(admin), specialtyHandler.Create)
		especialidades.GET("", specialtyHandler.List)
		especialidades.GET("/:id", specialtyHandler.Get)
		especialidades.PATCH("/:id", roles(admin), specialtyHandler.Update)
		especialidades.DELETE("/:id", roles(admin), specialtyHandler.Delete)
	}

	coberturas := private.Group("/coberturas")
	{
		coberturas.POST("", roles(admin, secretaria), coverageHandler.Create)
		coberturas.GET("", coverageHandler.List)
		coberturas.GET("/:id", coverageHandler.Get)
		coberturas.PATCH("/:id", roles(admin, secretaria), coverageHandler.Update)
		coberturas.DELETE("/:id", roles(admin), coverageHandler.Delete)
	}

	// ======================================================
	// OBRAS SOCIALES
	// ======================================================
	obrasSociales := private.Group("/obras-sociales")
	{
		obrasSociales.POST("", roles(admin, secretaria), insurerHandler.Create)
		obrasSociales.GET("", insurerHandler.List)
		obrasSociales.GET("/activas", insurerHandler.ListActive)
		obrasSociales.GET("/:code", insurerHandler.Get)
		obrasSociales.PATCH("/:code", roles(admin, secretaria), insurerHandler.Update)
		obrasSociales.DELETE("/:code", roles(admin), insurerHandler.Delete)
		obrasSociales.PATCH("/:code/restaurar", roles(admin), insurerHandler.Restore)
	}

	// ======================================================
	// HORARIOS DISPONIBLES
	// ======================================================
	horarios := private.Group("/horarios-disponibles")
	{
		horarios.POST("", roles(admin, secretaria), scheduleHandler.Create)
		horarios.GET("", scheduleHandler.List)
		horarios.GET("/dia", scheduleHandler.ListByWeekday)
		horarios.GET("/doctor/:id", scheduleHandler.ListByDoctor)
		horarios.GET("/doctor/:id/disponibilidad", scheduleHandler.Availability)
		horarios.GET("/consultorio/:id", scheduleHandler.ListByOffice)
		horarios.GET("/:id", scheduleHandler.Get)
		horarios.PATCH("/:id", roles(admin, secretaria), scheduleHandler.Update)
		horarios.DELETE("/:id", roles(admin, secretaria), scheduleHandler.Delete)
	}

	// ======================================================
	// USUARIOS
	// ======================================================
	usuarios := private.Group("/usuarios", roles(admin))
	{
		usuarios.POST("", userHandler.Create)
		usuarios.GET("", userHandler.List)
		usuarios.GET("/inactivos", userHandler.ListInactive)
		usuarios.GET("/:id", userHandler.Get)
		usuarios.PATCH("/:id", userHandler.Update)
		usuarios.DELETE("/:id", userHandler.Delete)
		usuarios.PATCH("/:id/restaurar", userHandler.Restore)
	}

	// ======================================================
	// AUDITORÍA / LOGS
	// ======================================================
	private.GET("/audit-logs", roles(admin), auditLogsHandler.List)
	private.GET("/logs", roles(admin), logsHandler.Tail)
	private.POST("/logs/archive", roles(admin), logsHandler.Archive)
}
