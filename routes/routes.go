package routes

import (
	"shuttle-tracker/config"
	boardingController "shuttle-tracker/controllers/boarding"
	employeeController "shuttle-tracker/controllers/employee"
	jobController "shuttle-tracker/controllers/job"
	reportController "shuttle-tracker/controllers/report"
	vehicleController "shuttle-tracker/controllers/vehicle"
	"shuttle-tracker/middleware"
	backupService "shuttle-tracker/services/backup"
	boardingService "shuttle-tracker/services/boarding"
	reportService "shuttle-tracker/services/report"
	resetService "shuttle-tracker/services/reset"
	"shuttle-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg config.Config, resetSvc *resetService.Service, backupSvc *backupService.Service) {
	clock := utils.NewClock(cfg.UTCOffsetHours)

	boardingSvc := boardingService.NewService(db, clock)
	reportSvc := reportService.NewService(db, clock)

	employees := employeeController.NewEmployeeController(db, clock)
	vehicles := vehicleController.NewVehicleController(db, clock)
	boarding := boardingController.NewBoardingController(boardingSvc, resetSvc)
	reports := reportController.NewReportController(reportSvc)
	jobs := jobController.NewJobController(resetSvc, backupSvc)

	api := app.Group("/api")

	/*=============================================================================
	| Employee Routes
	===============================================================================*/
	employeeGroup := api.Group("/employees")
	employeeGroup.Get("/", employees.Index)
	employeeGroup.Post("/", employees.Store)
	employeeGroup.Get("/:id", employees.Show)
	employeeGroup.Put("/:id", employees.Update)
	employeeGroup.Delete("/:id", employees.Destroy)

	/*=============================================================================
	| Vehicle Routes
	===============================================================================*/
	vehicleGroup := api.Group("/vehicles")
	vehicleGroup.Get("/", vehicles.Index)
	vehicleGroup.Post("/", vehicles.Store)
	vehicleGroup.Get("/:id", vehicles.Show)
	vehicleGroup.Put("/:id", vehicles.Update)
	vehicleGroup.Delete("/:id", vehicles.Destroy)

	/*=============================================================================
	| Boarding Routes
	===============================================================================*/
	boardingGroup := api.Group("/boarding")
	boardingGroup.Post("/register", boarding.Register)
	boardingGroup.Get("/records", boarding.Records)
	boardingGroup.Get("/stats", boarding.Stats)
	boardingGroup.Post("/reset", boarding.ResetSystem)

	/*=============================================================================
	| Report Routes
	===============================================================================*/
	reportGroup := api.Group("/reports")
	reportGroup.Get("/daily", reports.Daily)
	reportGroup.Get("/weekly", reports.Weekly)
	reportGroup.Get("/monthly", reports.Monthly)
	reportGroup.Get("/by-employee", reports.ByEmployee)
	reportGroup.Get("/by-vehicle", reports.ByVehicle)
	reportGroup.Get("/by-department", reports.ByDepartment)
	reportGroup.Get("/dashboard", reports.Dashboard)

	/*=============================================================================
	| Job Trigger Routes (bearer-token protected)
	===============================================================================*/
	jobGroup := api.Group("/jobs").Use(middleware.RequireJobToken(cfg.JobTriggerToken))
	jobGroup.Post("/reset", jobs.TriggerReset)
	jobGroup.Post("/backup", jobs.TriggerBackup)
}
