package job

import (
	"shuttle-tracker/logger"
	backupService "shuttle-tracker/services/backup"
	resetService "shuttle-tracker/services/reset"
	"shuttle-tracker/types"

	"github.com/gofiber/fiber/v2"
)

// JobController exposes the scheduled jobs as authenticated manual triggers.
type JobController struct {
	Reset  *resetService.Service
	Backup *backupService.Service
}

// NewJobController creates a new job controller
func NewJobController(reset *resetService.Service, backup *backupService.Service) *JobController {
	return &JobController{Reset: reset, Backup: backup}
}

// TriggerReset runs the daily status reversion on demand. Boarding records
// are never deleted here; that is the manual full reset's job.
func (jc *JobController) TriggerReset(c *fiber.Ctx) error {
	result, err := jc.Reset.AutoReset()
	if err != nil {
		logger.Error("Manual auto-reset trigger failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Manual reset completed",
		Data:    result,
	})
}

// TriggerBackup runs the weekly backup export on demand.
func (jc *JobController) TriggerBackup(c *fiber.Ctx) error {
	result, err := jc.Backup.Run(c.Context())
	if err != nil {
		logger.Error("Manual backup trigger failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "Backup completed",
		Data:    result,
	})
}
