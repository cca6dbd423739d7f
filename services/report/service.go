package report

import (
	"sort"
	"time"

	boardingModel "shuttle-tracker/models/boarding"
	employeeModel "shuttle-tracker/models/employee"
	vehicleModel "shuttle-tracker/models/vehicle"
	"shuttle-tracker/utils"

	"gorm.io/gorm"
)

// Default lookback windows, in days, matching the windows the reports were
// introduced with. Monthly uses a calendar offset instead.
const (
	defaultDailyDays    = 7
	defaultWeeklyDays   = 28
	defaultByEntityDays = 30
	defaultMonthlyBack  = 6 // months
)

// Service answers the read-only aggregate reports over boarding records.
// Rows are fetched with one indexed range scan and bucketed in Go, which
// keeps the queries portable across database engines.
type Service struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewService(db *gorm.DB, clock utils.Clock) *Service {
	return &Service{DB: db, Clock: clock}
}

// Period echoes the inclusive date range a report was evaluated over.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type DailyRow struct {
	Date           string `json:"date"`
	EmployeesCount int    `json:"employees_count"`
	VehiclesCount  int    `json:"vehicles_count"`
	RecordsCount   int    `json:"records_count"`
}

type WeeklyRow struct {
	Week           string `json:"week"`
	WeekStart      string `json:"week_start"`
	TotalEmployees int    `json:"total_employees"`
	TotalVehicles  int    `json:"total_vehicles"`
	TotalRecords   int    `json:"total_records"`
}

type MonthlyRow struct {
	Month          string `json:"month"`
	TotalEmployees int    `json:"total_employees"`
	TotalVehicles  int    `json:"total_vehicles"`
	TotalRecords   int    `json:"total_records"`
}

type ByEmployeeRow struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	BoardingCount int     `json:"boarding_count"`
	DaysCount     int     `json:"days_count"`
	FirstBoarding *string `json:"first_boarding"`
	LastBoarding  *string `json:"last_boarding"`
}

type ByVehicleRow struct {
	ID              *uint  `json:"id"`
	VehicleNumber   string `json:"vehicle_number"`
	DriverName      string `json:"driver_name"`
	BoardingCount   int     `json:"boarding_count"`
	UniqueEmployees int     `json:"unique_employees"`
	DaysUsed        int     `json:"days_used"`
	FirstUse        *string `json:"first_use"`
	LastUse         *string `json:"last_use"`
}

type ByDepartmentRow struct {
	Department     string `json:"department"`
	TotalEmployees int    `json:"total_employees"`
	BoardingCount  int    `json:"boarding_count"`
	DaysCount      int    `json:"days_count"`
}

// WindowStats is one dashboard window.
type WindowStats struct {
	BoardingCount int64 `json:"boarding_count"`
	EmployeeCount int64 `json:"employee_count"`
	VehicleCount  int64 `json:"vehicle_count"`
}

// Dashboard holds the four fixed windows, all evaluated against the same
// fixed-offset now. Each window is a superset of the previous one.
type Dashboard struct {
	Today     WindowStats `json:"today"`
	ThisWeek  WindowStats `json:"this_week"`
	ThisMonth WindowStats `json:"this_month"`
	Total     WindowStats `json:"total"`
}

// recordRow is the projection every bucketing report aggregates over.
type recordRow struct {
	BoardingDate string
	EmployeeID   uint
	VehicleID    *uint
}

func (s *Service) recordsBetween(startDate, endDate string) ([]recordRow, error) {
	var rows []recordRow
	err := s.DB.Model(&boardingModel.BoardingRecord{}).
		Select("boarding_date, employee_id, vehicle_id").
		Where("boarding_date BETWEEN ? AND ?", startDate, endDate).
		Scan(&rows).Error
	return rows, err
}

// rangeOrDefault fills missing bounds: end defaults to today, start to the
// given number of days back, both under the fixed offset.
func (s *Service) rangeOrDefault(startDate, endDate string, daysBack int) Period {
	nowTime := s.Clock.Now()
	if endDate == "" {
		endDate = utils.DateOf(nowTime)
	}
	if startDate == "" {
		startDate = utils.DateOf(nowTime.AddDate(0, 0, -daysBack))
	}
	return Period{StartDate: startDate, EndDate: endDate}
}

// Daily buckets records per date, newest date first.
func (s *Service) Daily(startDate, endDate string) ([]DailyRow, Period, error) {
	period := s.rangeOrDefault(startDate, endDate, defaultDailyDays)
	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	type bucket struct {
		employees map[uint]struct{}
		vehicles  map[uint]struct{}
		records   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		b := buckets[r.BoardingDate]
		if b == nil {
			b = &bucket{employees: map[uint]struct{}{}, vehicles: map[uint]struct{}{}}
			buckets[r.BoardingDate] = b
		}
		b.records++
		b.employees[r.EmployeeID] = struct{}{}
		if r.VehicleID != nil {
			b.vehicles[*r.VehicleID] = struct{}{}
		}
	}

	rows := make([]DailyRow, 0, len(buckets))
	for date, b := range buckets {
		rows = append(rows, DailyRow{
			Date:           date,
			EmployeesCount: len(b.employees),
			VehiclesCount:  len(b.vehicles),
			RecordsCount:   b.records,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, period, nil
}

// Weekly buckets records per ISO week (Monday start), newest week first.
func (s *Service) Weekly(startDate, endDate string) ([]WeeklyRow, Period, error) {
	period := s.rangeOrDefault(startDate, endDate, defaultWeeklyDays)
	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	type bucket struct {
		weekStart string
		employees map[uint]struct{}
		vehicles  map[uint]struct{}
		records   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		day, err := time.Parse(utils.DateLayout, r.BoardingDate)
		if err != nil {
			continue
		}
		week := utils.ISOWeekLabel(day)
		b := buckets[week]
		if b == nil {
			b = &bucket{
				weekStart: utils.DateOf(utils.WeekStart(day)),
				employees: map[uint]struct{}{},
				vehicles:  map[uint]struct{}{},
			}
			buckets[week] = b
		}
		b.records++
		b.employees[r.EmployeeID] = struct{}{}
		if r.VehicleID != nil {
			b.vehicles[*r.VehicleID] = struct{}{}
		}
	}

	rows := make([]WeeklyRow, 0, len(buckets))
	for week, b := range buckets {
		rows = append(rows, WeeklyRow{
			Week:           week,
			WeekStart:      b.weekStart,
			TotalEmployees: len(b.employees),
			TotalVehicles:  len(b.vehicles),
			TotalRecords:   b.records,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Week > rows[j].Week })
	return rows, period, nil
}

// Monthly buckets records per calendar month, newest month first.
func (s *Service) Monthly(startDate, endDate string) ([]MonthlyRow, Period, error) {
	nowTime := s.Clock.Now()
	if endDate == "" {
		endDate = utils.DateOf(nowTime)
	}
	if startDate == "" {
		startDate = utils.DateOf(nowTime.AddDate(0, -defaultMonthlyBack, 0))
	}
	period := Period{StartDate: startDate, EndDate: endDate}

	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	type bucket struct {
		employees map[uint]struct{}
		vehicles  map[uint]struct{}
		records   int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		if len(r.BoardingDate) < 7 {
			continue
		}
		month := r.BoardingDate[:7]
		b := buckets[month]
		if b == nil {
			b = &bucket{employees: map[uint]struct{}{}, vehicles: map[uint]struct{}{}}
			buckets[month] = b
		}
		b.records++
		b.employees[r.EmployeeID] = struct{}{}
		if r.VehicleID != nil {
			b.vehicles[*r.VehicleID] = struct{}{}
		}
	}

	rows := make([]MonthlyRow, 0, len(buckets))
	for month, b := range buckets {
		rows = append(rows, MonthlyRow{
			Month:          month,
			TotalEmployees: len(b.employees),
			TotalVehicles:  len(b.vehicles),
			TotalRecords:   b.records,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month > rows[j].Month })
	return rows, period, nil
}

// ByEmployee reports per-employee boarding activity. Every employee appears,
// including those with no boardings in range. Ordered by boarding count
// descending, then name ascending.
func (s *Service) ByEmployee(startDate, endDate string) ([]ByEmployeeRow, Period, error) {
	period := s.rangeOrDefault(startDate, endDate, defaultByEntityDays)

	var employees []employeeModel.Employee
	if err := s.DB.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, period, err
	}
	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	type agg struct {
		count int
		dates map[string]struct{}
		first string
		last  string
	}
	aggs := make(map[uint]*agg)
	for _, r := range records {
		a := aggs[r.EmployeeID]
		if a == nil {
			a = &agg{dates: map[string]struct{}{}}
			aggs[r.EmployeeID] = a
		}
		a.count++
		a.dates[r.BoardingDate] = struct{}{}
		if a.first == "" || r.BoardingDate < a.first {
			a.first = r.BoardingDate
		}
		if r.BoardingDate > a.last {
			a.last = r.BoardingDate
		}
	}

	rows := make([]ByEmployeeRow, 0, len(employees))
	for _, e := range employees {
		row := ByEmployeeRow{ID: e.ID, Name: e.Name, Department: e.Department}
		if a := aggs[e.ID]; a != nil {
			row.BoardingCount = a.count
			row.DaysCount = len(a.dates)
			row.FirstBoarding = &a.first
			row.LastBoarding = &a.last
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BoardingCount != rows[j].BoardingCount {
			return rows[i].BoardingCount > rows[j].BoardingCount
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, period, nil
}

// ByVehicle reports per-vehicle boarding activity for every tracked vehicle,
// ordered by boarding count descending then vehicle number ascending. When
// external boardings exist in range, a pseudo-row with a nil id and the
// external label is appended after the vehicle rows.
func (s *Service) ByVehicle(startDate, endDate string) ([]ByVehicleRow, Period, error) {
	period := s.rangeOrDefault(startDate, endDate, defaultByEntityDays)

	var vehicles []vehicleModel.Vehicle
	if err := s.DB.Order("id ASC").Find(&vehicles).Error; err != nil {
		return nil, period, err
	}
	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	type agg struct {
		count     int
		employees map[uint]struct{}
		dates     map[string]struct{}
		first     string
		last      string
	}
	newAgg := func() *agg {
		return &agg{employees: map[uint]struct{}{}, dates: map[string]struct{}{}}
	}
	aggs := make(map[uint]*agg)
	external := newAgg()
	for _, r := range records {
		a := external
		if r.VehicleID != nil {
			a = aggs[*r.VehicleID]
			if a == nil {
				a = newAgg()
				aggs[*r.VehicleID] = a
			}
		}
		a.count++
		a.employees[r.EmployeeID] = struct{}{}
		a.dates[r.BoardingDate] = struct{}{}
		if a.first == "" || r.BoardingDate < a.first {
			a.first = r.BoardingDate
		}
		if r.BoardingDate > a.last {
			a.last = r.BoardingDate
		}
	}

	rows := make([]ByVehicleRow, 0, len(vehicles)+1)
	for _, v := range vehicles {
		id := v.ID
		row := ByVehicleRow{ID: &id, VehicleNumber: v.VehicleNumber, DriverName: v.DriverName}
		if a := aggs[v.ID]; a != nil {
			row.BoardingCount = a.count
			row.UniqueEmployees = len(a.employees)
			row.DaysUsed = len(a.dates)
			row.FirstUse = &a.first
			row.LastUse = &a.last
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BoardingCount != rows[j].BoardingCount {
			return rows[i].BoardingCount > rows[j].BoardingCount
		}
		return rows[i].VehicleNumber < rows[j].VehicleNumber
	})

	if external.count > 0 {
		rows = append(rows, ByVehicleRow{
			VehicleNumber:   boardingModel.ExternalVehicleLabel,
			DriverName:      boardingModel.ExternalDriverLabel,
			BoardingCount:   external.count,
			UniqueEmployees: len(external.employees),
			DaysUsed:        len(external.dates),
			FirstUse:        &external.first,
			LastUse:         &external.last,
		})
	}
	return rows, period, nil
}

// ByDepartment reports boarding activity grouped by employee department,
// ordered by boarding count descending. Departments whose employees never
// boarded in range still appear.
func (s *Service) ByDepartment(startDate, endDate string) ([]ByDepartmentRow, Period, error) {
	period := s.rangeOrDefault(startDate, endDate, defaultByEntityDays)

	var employees []employeeModel.Employee
	if err := s.DB.Find(&employees).Error; err != nil {
		return nil, period, err
	}
	records, err := s.recordsBetween(period.StartDate, period.EndDate)
	if err != nil {
		return nil, period, err
	}

	departmentOf := make(map[uint]string, len(employees))
	type agg struct {
		employees int
		count     int
		dates     map[string]struct{}
	}
	aggs := make(map[string]*agg)
	for _, e := range employees {
		departmentOf[e.ID] = e.Department
		a := aggs[e.Department]
		if a == nil {
			a = &agg{dates: map[string]struct{}{}}
			aggs[e.Department] = a
		}
		a.employees++
	}
	for _, r := range records {
		department, ok := departmentOf[r.EmployeeID]
		if !ok {
			continue
		}
		a := aggs[department]
		a.count++
		a.dates[r.BoardingDate] = struct{}{}
	}

	rows := make([]ByDepartmentRow, 0, len(aggs))
	for department, a := range aggs {
		rows = append(rows, ByDepartmentRow{
			Department:     department,
			TotalEmployees: a.employees,
			BoardingCount:  a.count,
			DaysCount:      len(a.dates),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].BoardingCount != rows[j].BoardingCount {
			return rows[i].BoardingCount > rows[j].BoardingCount
		}
		return rows[i].Department < rows[j].Department
	})
	return rows, period, nil
}

// Dashboard computes the today / week-to-date / month-to-date / all-time
// windows against the same fixed-offset now.
func (s *Service) Dashboard() (Dashboard, error) {
	nowTime := s.Clock.Now()
	today := utils.DateOf(nowTime)
	weekStart := utils.DateOf(utils.WeekStart(nowTime))
	monthStart := utils.DateOf(utils.MonthStart(nowTime))

	var dashboard Dashboard
	var err error
	if dashboard.Today, err = s.windowStats("boarding_date = ?", today); err != nil {
		return dashboard, err
	}
	if dashboard.ThisWeek, err = s.windowStats("boarding_date >= ?", weekStart); err != nil {
		return dashboard, err
	}
	if dashboard.ThisMonth, err = s.windowStats("boarding_date >= ?", monthStart); err != nil {
		return dashboard, err
	}
	if dashboard.Total, err = s.windowStats(""); err != nil {
		return dashboard, err
	}
	return dashboard, nil
}

func (s *Service) windowStats(condition string, args ...interface{}) (WindowStats, error) {
	var stats WindowStats

	base := func() *gorm.DB {
		q := s.DB.Model(&boardingModel.BoardingRecord{})
		if condition != "" {
			q = q.Where(condition, args...)
		}
		return q
	}

	if err := base().Count(&stats.BoardingCount).Error; err != nil {
		return stats, err
	}
	if err := base().Distinct("employee_id").Count(&stats.EmployeeCount).Error; err != nil {
		return stats, err
	}
	if err := base().Where("vehicle_id IS NOT NULL").
		Distinct("vehicle_id").Count(&stats.VehicleCount).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
