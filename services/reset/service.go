package reset

import (
	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/utils"

	"gorm.io/gorm"
)

// Service reverts the transient statuses boarding registration applies.
// The scheduled daily job and the manual full reset share it.
type Service struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewService(db *gorm.DB, clock utils.Clock) *Service {
	return &Service{DB: db, Clock: clock}
}

// Result reports how many rows each reset step touched. DeletedRecords is
// only populated by FullReset.
type Result struct {
	EmployeesReset int64 `json:"employees_reset"`
	VehiclesReset  int64 `json:"vehicles_reset"`
	DeletedRecords int64 `json:"deleted_records"`
}

// AutoReset reverts employee status left->working and vehicle status
// completed/driving->waiting. Employees on business trips or vacation and
// vehicles in repair or out stay untouched, and no boarding record is
// deleted.
func (s *Service) AutoReset() (Result, error) {
	nowTime := s.Clock.Now()
	var res Result

	result := s.DB.Model(&employeeModel.Employee{}).
		Where("status = ?", employeeModel.StatusLeft).
		Updates(map[string]interface{}{
			"status":     employeeModel.StatusWorking,
			"updated_at": nowTime,
		})
	if result.Error != nil {
		return res, result.Error
	}
	res.EmployeesReset = result.RowsAffected

	result = s.DB.Model(&vehicleModel.Vehicle{}).
		Where("status IN ?", []vehicleModel.VehicleStatus{
			vehicleModel.StatusCompleted,
			vehicleModel.StatusDriving,
		}).
		Updates(map[string]interface{}{
			"status":     vehicleModel.StatusWaiting,
			"updated_at": nowTime,
		})
	if result.Error != nil {
		return res, result.Error
	}
	res.VehiclesReset = result.RowsAffected

	return res, nil
}

// FullReset deletes the boarding records of the current fixed-offset date
// and then applies the same status reversions as AutoReset. Records of
// earlier dates are never touched.
func (s *Service) FullReset() (Result, error) {
	var res Result

	result := s.DB.Where("boarding_date = ?", s.Clock.Today()).
		Delete(&boardingModel.BoardingRecord{})
	if result.Error != nil {
		return res, result.Error
	}

	res, err := s.AutoReset()
	if err != nil {
		return res, err
	}
	res.DeletedRecords = result.RowsAffected

	return res, nil
}
