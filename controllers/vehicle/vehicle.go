package vehicle

import (
	"errors"

	"shuttle-tracker/logger"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/types"
	vehicleTypes "shuttle-tracker/types/vehicle"
	"shuttle-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleController handles vehicle-related HTTP requests
type VehicleController struct {
	DB    *gorm.DB
	Clock utils.Clock
}

// NewVehicleController creates a new vehicle controller
func NewVehicleController(db *gorm.DB, clock utils.Clock) *VehicleController {
	return &VehicleController{DB: db, Clock: clock}
}

// Index lists all vehicles, newest created first.
func (vc *VehicleController) Index(c *fiber.Ctx) error {
	vehicles := make([]vehicleModel.Vehicle, 0)
	if err := vc.DB.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: vehicles})
}

// Show returns one vehicle by id.
func (vc *VehicleController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid vehicle id",
		})
	}

	var veh vehicleModel.Vehicle
	if err := vc.DB.First(&veh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Success: false,
				Error:   "Vehicle not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: veh})
}

// Store creates a new vehicle in the default waiting status.
func (vc *VehicleController) Store(c *fiber.Ctx) error {
	var req vehicleTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	nowTime := vc.Clock.Now()
	veh := vehicleModel.Vehicle{
		VehicleNumber: req.VehicleNumber,
		DriverName:    req.DriverName,
		DriverPhone:   req.DriverPhone,
		Status:        vehicleModel.StatusWaiting,
		CreatedAt:     nowTime,
		UpdatedAt:     nowTime,
	}
	if err := vc.DB.Create(&veh).Error; err != nil {
		logger.Error("Failed to create vehicle", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{Success: true, Data: veh})
}

// Update replaces the full editable row, status included.
func (vc *VehicleController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid vehicle id",
		})
	}

	var req vehicleTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := vc.DB.Model(&vehicleModel.Vehicle{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"vehicle_number": req.VehicleNumber,
			"driver_name":    req.DriverName,
			"driver_phone":   req.DriverPhone,
			"status":         req.Status,
			"updated_at":     vc.Clock.Now(),
		}).Error; err != nil {
		logger.Error("Failed to update vehicle", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Data: fiber.Map{
			"id":             id,
			"vehicle_number": req.VehicleNumber,
			"driver_name":    req.DriverName,
			"driver_phone":   req.DriverPhone,
			"status":         req.Status,
		},
	})
}

// Destroy deletes a vehicle. Idempotent; existing boarding records fall back
// to a null vehicle reference.
func (vc *VehicleController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid vehicle id",
		})
	}

	if err := vc.DB.Delete(&vehicleModel.Vehicle{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Message: "Vehicle deleted"})
}
