package boarding

import (
	"fmt"
	"time"

	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/utils"

	"gorm.io/gorm"
)

// Service implements the boarding-registration workflow plus the record and
// status queries built on top of it.
type Service struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewService(db *gorm.DB, clock utils.Clock) *Service {
	return &Service{DB: db, Clock: clock}
}

// RecordRow is a boarding record joined with its display fields. External
// boardings carry the fixed external-vehicle label and a dash driver.
type RecordRow struct {
	ID            uint      `json:"id"`
	BoardingDate  string    `json:"boarding_date"`
	BoardingTime  time.Time `json:"boarding_time"`
	VehicleNumber string    `json:"vehicle_number"`
	DriverName    string    `json:"driver_name"`
	EmployeeName  string    `json:"employee_name"`
	Department    string    `json:"department"`
}

// StatusCount is one status bucket of the stats summary.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Stats summarizes current entity statuses and today's boarding volume.
type Stats struct {
	Employees          []StatusCount `json:"employees"`
	Vehicles           []StatusCount `json:"vehicles"`
	TodayBoardingCount int64         `json:"today_boarding_count"`
}

// Register records the departure of the given employees on one vehicle (or
// an external one, vehicleID ignored) and flips the dependent statuses:
// every employee becomes "left", a tracked vehicle becomes "driving". All
// rows are stamped with a single fixed-offset instant and the whole workflow
// runs in one transaction, so a failure leaves nothing behind.
func (s *Service) Register(vehicleID uint, isExternal bool, employeeIDs []uint) error {
	nowTime := s.Clock.Now()
	boardingDate := utils.DateOf(nowTime)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var employeeCount int64
		if err := tx.Model(&employeeModel.Employee{}).
			Where("id IN ?", employeeIDs).
			Count(&employeeCount).Error; err != nil {
			return err
		}
		if employeeCount != int64(len(distinct(employeeIDs))) {
			return fmt.Errorf("one or more employees do not exist")
		}

		for _, employeeID := range employeeIDs {
			record := boardingModel.BoardingRecord{
				EmployeeID:   employeeID,
				BoardingDate: boardingDate,
				BoardingTime: nowTime,
				CreatedAt:    nowTime,
			}
			if !isExternal {
				id := vehicleID
				record.VehicleID = &id
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}

			if err := tx.Model(&employeeModel.Employee{}).
				Where("id = ?", employeeID).
				Updates(map[string]interface{}{
					"status":     employeeModel.StatusLeft,
					"updated_at": nowTime,
				}).Error; err != nil {
				return err
			}
		}

		if !isExternal {
			result := tx.Model(&vehicleModel.Vehicle{}).
				Where("id = ?", vehicleID).
				Updates(map[string]interface{}{
					"status":     vehicleModel.StatusDriving,
					"updated_at": nowTime,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("vehicle %d does not exist", vehicleID)
			}
		}

		return nil
	})
}

// Records lists boarding records in the inclusive date range, newest first,
// joined with the employee and vehicle display fields.
func (s *Service) Records(startDate, endDate string) ([]RecordRow, error) {
	rows := make([]RecordRow, 0)
	err := s.DB.Table("boarding_records AS br").
		Select("br.id, br.boarding_date, br.boarding_time, "+
			"COALESCE(v.vehicle_number, ?) AS vehicle_number, "+
			"COALESCE(v.driver_name, ?) AS driver_name, "+
			"e.name AS employee_name, e.department",
			boardingModel.ExternalVehicleLabel, boardingModel.ExternalDriverLabel).
		Joins("LEFT JOIN vehicles v ON br.vehicle_id = v.id").
		Joins("JOIN employees e ON br.employee_id = e.id").
		Where("br.boarding_date BETWEEN ? AND ?", startDate, endDate).
		Order("br.boarding_time DESC").
		Scan(&rows).Error
	return rows, err
}

// Stats returns per-status entity counts and today's boarding count under
// the fixed-offset date.
func (s *Service) Stats() (Stats, error) {
	stats := Stats{
		Employees: make([]StatusCount, 0),
		Vehicles:  make([]StatusCount, 0),
	}

	if err := s.DB.Model(&employeeModel.Employee{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.Employees).Error; err != nil {
		return stats, err
	}

	if err := s.DB.Model(&vehicleModel.Vehicle{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.Vehicles).Error; err != nil {
		return stats, err
	}

	if err := s.DB.Model(&boardingModel.BoardingRecord{}).
		Where("boarding_date = ?", s.Clock.Today()).
		Count(&stats.TodayBoardingCount).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
