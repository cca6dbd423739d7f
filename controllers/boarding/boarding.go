package boarding

import (
	"fmt"

	"shuttle-tracker/logger"
	boardingService "shuttle-tracker/services/boarding"
	resetService "shuttle-tracker/services/reset"
	"shuttle-tracker/types"
	boardingTypes "shuttle-tracker/types/boarding"

	"github.com/gofiber/fiber/v2"
)

// BoardingController handles the boarding workflow HTTP requests
type BoardingController struct {
	Boarding *boardingService.Service
	Reset    *resetService.Service
}

// NewBoardingController creates a new boarding controller
func NewBoardingController(boarding *boardingService.Service, reset *resetService.Service) *BoardingController {
	return &BoardingController{Boarding: boarding, Reset: reset}
}

// Register records the departure of one or more employees via one vehicle
// or an external one.
func (bc *BoardingController) Register(c *fiber.Ctx) error {
	var req boardingTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Vehicle ID and employee IDs array are required",
		})
	}

	vehicleID, isExternal, err := req.ResolveVehicle()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := bc.Boarding.Register(vehicleID, isExternal, req.EmployeeIDs); err != nil {
		logger.Error("Boarding registration failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Success: true,
		Message: fmt.Sprintf("%d employees registered for boarding", len(req.EmployeeIDs)),
		Data: fiber.Map{
			"vehicle_id":   req.VehicleID,
			"employee_ids": req.EmployeeIDs,
			"is_external":  isExternal,
		},
	})
}

// Records lists boarding records in a date range, both bounds defaulting to
// today under the fixed offset.
func (bc *BoardingController) Records(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" {
		startDate = bc.Boarding.Clock.Today()
	}
	if endDate == "" {
		endDate = bc.Boarding.Clock.Today()
	}

	rows, err := bc.Boarding.Records(startDate, endDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: rows})
}

// Stats returns the per-status entity counts and today's boarding count.
func (bc *BoardingController) Stats(c *fiber.Ctx) error {
	stats, err := bc.Boarding.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: stats})
}

// ResetSystem performs the manual full reset: today's boarding records are
// deleted and the transient statuses reverted.
func (bc *BoardingController) ResetSystem(c *fiber.Ctx) error {
	result, err := bc.Reset.FullReset()
	if err != nil {
		logger.Error("Manual reset failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{
		Success: true,
		Message: "System has been reset successfully",
		Data:    result,
	})
}
