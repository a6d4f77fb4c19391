package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/metrics"
	"venue-allotment/backend/internal/middleware"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/repository/postgres/allocation"
	"venue-allotment/backend/internal/repository/postgres/attendance"
	"venue-allotment/backend/internal/repository/postgres/faculty"
	"venue-allotment/backend/internal/repository/postgres/importer"
	"venue-allotment/backend/internal/repository/postgres/venue"

	allocation_controller "venue-allotment/backend/internal/controller/http/v1/allocation"
	attendance_controller "venue-allotment/backend/internal/controller/http/v1/attendance"
	auth_controller "venue-allotment/backend/internal/controller/http/v1/auth"
	faculty_controller "venue-allotment/backend/internal/controller/http/v1/faculty"
	importer_controller "venue-allotment/backend/internal/controller/http/v1/importer"
	venue_controller "venue-allotment/backend/internal/controller/http/v1/venue"
)

type Router struct {
	*web.App
	postgresDB  *postgresql.Database
	redisDB     *redis.Client
	auth        *auth.Auth
	assigner    allocation.Assigner
	corsOrigins []string
	pdfFont     string
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	assigner allocation.Assigner,
	corsOrigins []string,
	pdfFont string,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		auth,
		assigner,
		corsOrigins,
		pdfFont,
	}
}

// Init registers every route on the application.
func (r Router) Init() {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CORSMiddleware(r.corsOrigins))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/healthz", r.health)

	// - postgresql
	facultyPostgres := faculty.NewRepository(r.postgresDB)
	venuePostgres := venue.NewRepository(r.postgresDB)
	allocationPostgres := allocation.NewRepository(r.postgresDB, r.assigner)
	attendancePostgres := attendance.NewRepository(r.postgresDB)
	importerPostgres := importer.NewRepository(r.postgresDB)

	// controller
	authController := auth_controller.NewController(facultyPostgres, r.auth)
	facultyController := faculty_controller.NewController(facultyPostgres)
	venueController := venue_controller.NewController(venuePostgres)
	allocationController := allocation_controller.NewController(allocationPostgres)
	attendanceController := attendance_controller.NewController(attendancePostgres, r.pdfFont)
	importerController := importer_controller.NewController(importerPostgres)

	bearer := middleware.Authenticate(r.auth, facultyPostgres)
	admin := middleware.Authenticate(r.auth, facultyPostgres, auth.RoleAdmin)

	// #auth
	r.Post("/api/login", authController.SignIn)
	r.Post("/api/logout", authController.SignOut, bearer)
	r.Get("/api/current-identity", authController.CurrentIdentity, bearer)

	// #attendance
	r.Post("/api/attendance", attendanceController.Mark, bearer)
	r.Get("/api/attendance-records", attendanceController.GetList, admin)

	// #venue
	r.Get("/api/venues", venueController.GetList, bearer)
	r.Get("/api/venues/:id", venueController.GetDetailById, bearer)
	r.Post("/api/venues", venueController.Create, admin)
	r.Delete("/api/venues/:id", venueController.Delete, admin)

	// #faculty
	r.Get("/api/faculty", facultyController.GetList, admin)
	r.Get("/api/faculty/:id", facultyController.GetDetailById, admin)
	r.Get("/api/faculty/:id/badge", facultyController.GetBadge, admin)
	r.Post("/api/faculty", facultyController.Create, admin)
	r.Delete("/api/faculty/:id", facultyController.Delete, admin)

	// #allocation
	r.Get("/api/allocations", allocationController.GetList, bearer)
	r.Post("/api/allocations/generate", allocationController.Generate, admin)

	// #bulk import
	r.Post("/api/bulk-import/faculty", importerController.ImportFaculty, admin)
	r.Post("/api/bulk-import/venues", importerController.ImportVenues, admin)
}

func (r Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"database": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := r.postgresDB.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if r.redisDB != nil {
		if err := r.redisDB.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, map[string]interface{}{
		"status": status == http.StatusOK,
		"data":   checks,
	})
}
