package report

import (
	reportService "shuttle-tracker/services/report"
	"shuttle-tracker/types"

	"github.com/gofiber/fiber/v2"
)

// ReportController handles the read-only aggregate reports
type ReportController struct {
	Reports *reportService.Service
}

// NewReportController creates a new report controller
func NewReportController(reports *reportService.Service) *ReportController {
	return &ReportController{Reports: reports}
}

func (rc *ReportController) Daily(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.Daily(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) Weekly(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.Weekly(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) Monthly(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.Monthly(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) ByEmployee(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.ByEmployee(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) ByVehicle(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.ByVehicle(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) ByDepartment(c *fiber.Ctx) error {
	rows, period, err := rc.Reports.ByDepartment(c.Query("start_date"), c.Query("end_date"))
	return respond(c, rows, period, err)
}

func (rc *ReportController) Dashboard(c *fiber.Ctx) error {
	dashboard, err := rc.Reports.Dashboard()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: dashboard})
}

func respond(c *fiber.Ctx, rows interface{}, period reportService.Period, err error) error {
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: rows, Period: period})
}
