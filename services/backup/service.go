package backup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"shuttle-tracker/logger"
	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/services/mailer"
	"shuttle-tracker/storage"
	"shuttle-tracker/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// How far back the boarding-record export reaches, in days.
const recordExportDays = 90

// Service exports all tables to CSV and optionally persists the files to the
// blob store and notifies an operator. Store and Notify may be nil; each
// integration is then skipped.
type Service struct {
	DB     *gorm.DB
	Clock  utils.Clock
	Store  storage.BlobStore
	Notify mailer.Notifier
}

func NewService(db *gorm.DB, clock utils.Clock, store storage.BlobStore, notify mailer.Notifier) *Service {
	return &Service{DB: db, Clock: clock, Store: store, Notify: notify}
}

// Result reports one backup run.
type Result struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Employees int    `json:"employees"`
	Vehicles  int    `json:"vehicles"`
	Records   int    `json:"records"`
	Stored    bool   `json:"stored"`
	Notified  bool   `json:"notified"`
}

// exportedRecord is a boarding record joined with the employee and vehicle
// display fields for the export.
type exportedRecord struct {
	ID            uint
	VehicleID     *uint
	EmployeeID    uint
	BoardingDate  string
	BoardingTime  time.Time
	CreatedAt     time.Time
	EmployeeName  *string
	Department    *string
	VehicleNumber *string
	DriverName    *string
}

// Run exports all employees, all vehicles, and the last 90 days of boarding
// records to CSV, keyed under the current fixed-offset date.
func (s *Service) Run(ctx context.Context) (Result, error) {
	result := Result{
		RunID:     uuid.NewString(),
		Timestamp: s.Clock.Today(),
	}
	logger.Info(fmt.Sprintf("Backup %s started", result.RunID))

	var employees []employeeModel.Employee
	if err := s.DB.Order("id ASC").Find(&employees).Error; err != nil {
		return result, err
	}

	var vehicles []vehicleModel.Vehicle
	if err := s.DB.Order("id ASC").Find(&vehicles).Error; err != nil {
		return result, err
	}

	cutoff := utils.DateOf(s.Clock.Now().AddDate(0, 0, -recordExportDays))
	var records []exportedRecord
	if err := s.DB.Table("boarding_records AS br").
		Select("br.id, br.vehicle_id, br.employee_id, br.boarding_date, br.boarding_time, br.created_at, " +
			"e.name AS employee_name, e.department, v.vehicle_number, v.driver_name").
		Joins("LEFT JOIN employees e ON br.employee_id = e.id").
		Joins("LEFT JOIN vehicles v ON br.vehicle_id = v.id").
		Where("br.boarding_date >= ?", cutoff).
		Order("br.boarding_time DESC").
		Scan(&records).Error; err != nil {
		return result, err
	}

	result.Employees = len(employees)
	result.Vehicles = len(vehicles)
	result.Records = len(records)

	if s.Store != nil {
		files := map[string]string{
			"employees.csv":        employeesCSV(employees),
			"vehicles.csv":         vehiclesCSV(vehicles),
			"boarding_records.csv": recordsCSV(records),
		}
		for name, content := range files {
			key := fmt.Sprintf("backups/%s/%s", result.Timestamp, name)
			if err := s.Store.Put(ctx, key, []byte(content)); err != nil {
				return result, err
			}
		}
		result.Stored = true
	}

	if s.Notify != nil {
		subject := fmt.Sprintf("Shuttle tracker backup %s", result.Timestamp)
		body := fmt.Sprintf("Backup completed.\n\nEmployees: %d\nVehicles: %d\nBoarding records (last %d days): %d\n",
			result.Employees, result.Vehicles, recordExportDays, result.Records)
		if err := s.Notify.Notify(subject, body); err != nil {
			logger.Error("Backup notification failed", err)
		} else {
			result.Notified = true
		}
	}

	logger.Success(fmt.Sprintf("Backup %s completed: %d employees, %d vehicles, %d records",
		result.RunID, result.Employees, result.Vehicles, result.Records))
	return result, nil
}

func employeesCSV(employees []employeeModel.Employee) string {
	headers := []string{"id", "name", "department", "status", "created_at", "updated_at"}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			formatUint(e.ID),
			e.Name,
			e.Department,
			e.Status.String(),
			formatTime(e.CreatedAt),
			formatTime(e.UpdatedAt),
		})
	}
	return utils.ToCSV(headers, rows)
}

func vehiclesCSV(vehicles []vehicleModel.Vehicle) string {
	headers := []string{"id", "vehicle_number", "driver_name", "driver_phone", "status", "created_at", "updated_at"}
	rows := make([][]string, 0, len(vehicles))
	for _, v := range vehicles {
		rows = append(rows, []string{
			formatUint(v.ID),
			v.VehicleNumber,
			v.DriverName,
			v.DriverPhone,
			v.Status.String(),
			formatTime(v.CreatedAt),
			formatTime(v.UpdatedAt),
		})
	}
	return utils.ToCSV(headers, rows)
}

func recordsCSV(records []exportedRecord) string {
	headers := []string{"id", "vehicle_id", "employee_id", "boarding_date", "boarding_time",
		"created_at", "employee_name", "department", "vehicle_number", "driver_name"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		vehicleID := ""
		if r.VehicleID != nil {
			vehicleID = formatUint(*r.VehicleID)
		}
		vehicleNumber := boardingModel.ExternalVehicleLabel
		driverName := boardingModel.ExternalDriverLabel
		if r.VehicleNumber != nil {
			vehicleNumber = *r.VehicleNumber
		}
		if r.DriverName != nil {
			driverName = *r.DriverName
		}
		rows = append(rows, []string{
			formatUint(r.ID),
			vehicleID,
			formatUint(r.EmployeeID),
			r.BoardingDate,
			formatTime(r.BoardingTime),
			formatTime(r.CreatedAt),
			stringOrEmpty(r.EmployeeName),
			stringOrEmpty(r.Department),
			vehicleNumber,
			driverName,
		})
	}
	return utils.ToCSV(headers, rows)
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
