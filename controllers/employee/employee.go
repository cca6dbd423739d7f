package employee

import (
	"errors"

	"shuttle-tracker/logger"
	employeeModel "shuttle-tracker/models/employee"
	"shuttle-tracker/types"
	employeeTypes "shuttle-tracker/types/employee"
	"shuttle-tracker/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EmployeeController handles employee-related HTTP requests
type EmployeeController struct {
	DB    *gorm.DB
	Clock utils.Clock
}

// NewEmployeeController creates a new employee controller
func NewEmployeeController(db *gorm.DB, clock utils.Clock) *EmployeeController {
	return &EmployeeController{DB: db, Clock: clock}
}

// Index lists all employees, newest created first.
func (ec *EmployeeController) Index(c *fiber.Ctx) error {
	employees := make([]employeeModel.Employee, 0)
	if err := ec.DB.Order("created_at DESC").Find(&employees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: employees})
}

// Show returns one employee by id.
func (ec *EmployeeController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid employee id",
		})
	}

	var emp employeeModel.Employee
	if err := ec.DB.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Success: false,
				Error:   "Employee not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Data: emp})
}

// Store creates a new employee in the default working status.
func (ec *EmployeeController) Store(c *fiber.Ctx) error {
	var req employeeTypes.CreateRequest
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

	nowTime := ec.Clock.Now()
	emp := employeeModel.Employee{
		Name:       req.Name,
		Department: req.Department,
		Status:     employeeModel.StatusWorking,
		CreatedAt:  nowTime,
		UpdatedAt:  nowTime,
	}
	if err := ec.DB.Create(&emp).Error; err != nil {
		logger.Error("Failed to create employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{Success: true, Data: emp})
}

// Update replaces the full editable row, status included.
func (ec *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid employee id",
		})
	}

	var req employeeTypes.UpdateRequest
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

	if err := ec.DB.Model(&employeeModel.Employee{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       req.Name,
			"department": req.Department,
			"status":     req.Status,
			"updated_at": ec.Clock.Now(),
		}).Error; err != nil {
		logger.Error("Failed to update employee", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(types.ApiResponse{
		Success: true,
		Data: fiber.Map{
			"id":         id,
			"name":       req.Name,
			"department": req.Department,
			"status":     req.Status,
		},
	})
}

// Destroy deletes an employee. Idempotent; existing boarding records keep
// their employee reference.
func (ec *EmployeeController) Destroy(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Success: false,
			Error:   "Invalid employee id",
		})
	}

	if err := ec.DB.Delete(&employeeModel.Employee{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.ApiResponse{Success: true, Message: "Employee deleted"})
}
