package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&employeeModel.Employee{},
		&vehicleModel.Vehicle{},
		&boardingModel.BoardingRecord{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, name, department string) employeeModel.Employee {
	t.Helper()
	emp := employeeModel.Employee{Name: name, Department: department, Status: employeeModel.StatusWorking}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return emp
}

func seedVehicle(t *testing.T, db *gorm.DB, number string) vehicleModel.Vehicle {
	t.Helper()
	veh := vehicleModel.Vehicle{
		VehicleNumber: number,
		DriverName:    "Driver " + number,
		DriverPhone:   "000-0000",
		Status:        vehicleModel.StatusWaiting,
	}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return veh
}

func seedRecord(t *testing.T, db *gorm.DB, employeeID uint, vehicleID *uint, date string) {
	t.Helper()
	boardingTime, err := time.Parse(utils.DateLayout, date)
	if err != nil {
		t.Fatalf("parse date %s: %v", date, err)
	}
	rec := boardingModel.BoardingRecord{
		EmployeeID:   employeeID,
		VehicleID:    vehicleID,
		BoardingDate: date,
		BoardingTime: boardingTime,
		CreatedAt:    boardingTime,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestDaily(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	e1 := seedEmployee(t, db, "Alice", "Assembly")
	e2 := seedEmployee(t, db, "Bob", "QA")
	veh := seedVehicle(t, db, "V1")

	// Two boardings on 2026-03-02 (one external), one on 2026-03-03.
	seedRecord(t, db, e1.ID, &veh.ID, "2026-03-02")
	seedRecord(t, db, e2.ID, nil, "2026-03-02")
	seedRecord(t, db, e1.ID, &veh.ID, "2026-03-03")

	rows, period, err := svc.Daily("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if period.StartDate != "2026-03-01" || period.EndDate != "2026-03-05" {
		t.Errorf("period = %+v", period)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 daily rows, got %d", len(rows))
	}
	if rows[0].Date != "2026-03-03" || rows[1].Date != "2026-03-02" {
		t.Errorf("rows not sorted newest first: %+v", rows)
	}
	march2 := rows[1]
	if march2.RecordsCount != 2 || march2.EmployeesCount != 2 {
		t.Errorf("2026-03-02 counts = %+v, want 2 records, 2 employees", march2)
	}
	// External (null vehicle) rows do not contribute to the vehicle count.
	if march2.VehiclesCount != 1 {
		t.Errorf("2026-03-02 vehicles_count = %d, want 1", march2.VehiclesCount)
	}
}

func TestWeeklyBucketsByISOWeek(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	emp := seedEmployee(t, db, "Alice", "Assembly")
	veh := seedVehicle(t, db, "V1")

	// 2026-03-02 (Monday) and 2026-03-08 (Sunday) share a week;
	// 2026-03-09 (Monday) starts the next one.
	seedRecord(t, db, emp.ID, &veh.ID, "2026-03-02")
	seedRecord(t, db, emp.ID, &veh.ID, "2026-03-08")
	seedRecord(t, db, emp.ID, &veh.ID, "2026-03-09")

	rows, _, err := svc.Weekly("2026-03-01", "2026-03-15")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 weekly rows, got %d: %+v", len(rows), rows)
	}
	// Newest week first.
	if rows[0].WeekStart != "2026-03-09" || rows[0].TotalRecords != 1 {
		t.Errorf("first row = %+v, want week starting 2026-03-09 with 1 record", rows[0])
	}
	if rows[1].WeekStart != "2026-03-02" || rows[1].TotalRecords != 2 {
		t.Errorf("second row = %+v, want week starting 2026-03-02 with 2 records", rows[1])
	}
	if rows[1].Week != "2026-W10" {
		t.Errorf("week label = %q, want 2026-W10", rows[1].Week)
	}
}

func TestMonthly(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	emp := seedEmployee(t, db, "Alice", "Assembly")
	seedRecord(t, db, emp.ID, nil, "2026-02-27")
	seedRecord(t, db, emp.ID, nil, "2026-03-02")
	seedRecord(t, db, emp.ID, nil, "2026-03-03")

	rows, _, err := svc.Monthly("2026-02-01", "2026-03-31")
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 monthly rows, got %d", len(rows))
	}
	if rows[0].Month != "2026-03" || rows[0].TotalRecords != 2 {
		t.Errorf("first row = %+v, want 2026-03 with 2 records", rows[0])
	}
	if rows[1].Month != "2026-02" || rows[1].TotalRecords != 1 {
		t.Errorf("second row = %+v, want 2026-02 with 1 record", rows[1])
	}
}

func TestByEmployeeIncludesZeroCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	active := seedEmployee(t, db, "Alice", "Assembly")
	idle := seedEmployee(t, db, "Bob", "QA")

	seedRecord(t, db, active.ID, nil, "2026-03-02")
	seedRecord(t, db, active.ID, nil, "2026-03-02")
	seedRecord(t, db, active.ID, nil, "2026-03-04")

	rows, _, err := svc.ByEmployee("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatalf("ByEmployee: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != active.ID || rows[0].BoardingCount != 3 || rows[0].DaysCount != 2 {
		t.Errorf("active row = %+v, want 3 boardings over 2 days", rows[0])
	}
	if rows[0].FirstBoarding == nil || *rows[0].FirstBoarding != "2026-03-02" {
		t.Errorf("active first_boarding = %v, want 2026-03-02", rows[0].FirstBoarding)
	}
	if rows[0].LastBoarding == nil || *rows[0].LastBoarding != "2026-03-04" {
		t.Errorf("active last_boarding = %v, want 2026-03-04", rows[0].LastBoarding)
	}
	if rows[1].ID != idle.ID || rows[1].BoardingCount != 0 {
		t.Errorf("idle row = %+v, want zero boardings", rows[1])
	}
	// Idle employees carry explicit nulls, not empty strings.
	if rows[1].FirstBoarding != nil || rows[1].LastBoarding != nil {
		t.Errorf("idle first/last = %v/%v, want nil", rows[1].FirstBoarding, rows[1].LastBoarding)
	}
}

func TestByVehicleExternalPseudoRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	emp := seedEmployee(t, db, "Alice", "Assembly")
	veh := seedVehicle(t, db, "V1")

	seedRecord(t, db, emp.ID, &veh.ID, "2026-03-02")
	seedRecord(t, db, emp.ID, nil, "2026-03-02")
	seedRecord(t, db, emp.ID, nil, "2026-03-03")

	rows, _, err := svc.ByVehicle("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatalf("ByVehicle: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected vehicle row plus external pseudo-row, got %d", len(rows))
	}

	last := rows[len(rows)-1]
	if last.ID != nil {
		t.Errorf("external pseudo-row id = %v, want nil", *last.ID)
	}
	if last.VehicleNumber != boardingModel.ExternalVehicleLabel {
		t.Errorf("external pseudo-row label = %q, want %q", last.VehicleNumber, boardingModel.ExternalVehicleLabel)
	}
	if last.BoardingCount != 2 || last.DaysUsed != 2 {
		t.Errorf("external pseudo-row = %+v, want 2 boardings over 2 days", last)
	}
}

func TestByVehicleWithoutExternalBoardings(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	emp := seedEmployee(t, db, "Alice", "Assembly")
	veh := seedVehicle(t, db, "V1")
	idle := seedVehicle(t, db, "V2")
	seedRecord(t, db, emp.ID, &veh.ID, "2026-03-02")

	rows, _, err := svc.ByVehicle("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatalf("ByVehicle: %v", err)
	}
	for _, row := range rows {
		if row.VehicleNumber == boardingModel.ExternalVehicleLabel {
			t.Errorf("no external pseudo-row expected, got %+v", row)
		}
		// Unused vehicles carry explicit nulls, not empty strings.
		if row.ID != nil && *row.ID == idle.ID && (row.FirstUse != nil || row.LastUse != nil) {
			t.Errorf("idle vehicle first/last use = %v/%v, want nil", row.FirstUse, row.LastUse)
		}
	}
}

func TestByDepartment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, utils.NewClock(7))

	a1 := seedEmployee(t, db, "Alice", "Assembly")
	a2 := seedEmployee(t, db, "Anna", "Assembly")
	seedEmployee(t, db, "Bob", "QA")

	seedRecord(t, db, a1.ID, nil, "2026-03-02")
	seedRecord(t, db, a2.ID, nil, "2026-03-02")

	rows, _, err := svc.ByDepartment("2026-03-01", "2026-03-05")
	if err != nil {
		t.Fatalf("ByDepartment: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 department rows, got %d", len(rows))
	}
	if rows[0].Department != "Assembly" || rows[0].BoardingCount != 2 || rows[0].TotalEmployees != 2 {
		t.Errorf("assembly row = %+v", rows[0])
	}
	if rows[1].Department != "QA" || rows[1].BoardingCount != 0 || rows[1].TotalEmployees != 1 {
		t.Errorf("qa row = %+v", rows[1])
	}
}

func TestDashboardWindowsAreNonDecreasing(t *testing.T) {
	db := newTestDB(t)
	clock := utils.NewClock(7)
	svc := NewService(db, clock)

	emp := seedEmployee(t, db, "Alice", "Assembly")
	veh := seedVehicle(t, db, "V1")

	today := clock.Today()
	longAgo := utils.DateOf(clock.Now().AddDate(0, -3, 0))
	seedRecord(t, db, emp.ID, &veh.ID, today)
	seedRecord(t, db, emp.ID, nil, today)
	seedRecord(t, db, emp.ID, &veh.ID, longAgo)

	dashboard, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if dashboard.Today.BoardingCount != 2 {
		t.Errorf("today boarding_count = %d, want 2", dashboard.Today.BoardingCount)
	}
	// The null-vehicle boarding does not count as a vehicle.
	if dashboard.Today.VehicleCount != 1 {
		t.Errorf("today vehicle_count = %d, want 1", dashboard.Today.VehicleCount)
	}
	if dashboard.Total.BoardingCount != 3 {
		t.Errorf("total boarding_count = %d, want 3", dashboard.Total.BoardingCount)
	}

	windows := []WindowStats{dashboard.Today, dashboard.ThisWeek, dashboard.ThisMonth, dashboard.Total}
	for i := 1; i < len(windows); i++ {
		if windows[i].BoardingCount < windows[i-1].BoardingCount {
			t.Errorf("window %d boarding_count %d < window %d boarding_count %d",
				i, windows[i].BoardingCount, i-1, windows[i-1].BoardingCount)
		}
	}
}

func TestDefaultPeriodEchoed(t *testing.T) {
	db := newTestDB(t)
	clock := utils.NewClock(7)
	svc := NewService(db, clock)

	_, period, err := svc.Daily("", "")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if period.EndDate != clock.Today() {
		t.Errorf("default end_date = %q, want today %q", period.EndDate, clock.Today())
	}
	if period.StartDate != utils.DateOf(clock.Now().AddDate(0, 0, -7)) {
		t.Errorf("default start_date = %q, want 7 days back", period.StartDate)
	}
}
