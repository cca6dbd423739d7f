package backup

import (
	"context"
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

// memoryStore collects Put calls for assertions.
type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Put(_ context.Context, key string, content []byte) error {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = content
	return nil
}

// memoryNotifier records the last notification.
type memoryNotifier struct {
	subject string
	body    string
	calls   int
}

func (m *memoryNotifier) Notify(subject, body string) error {
	m.subject = subject
	m.body = body
	m.calls++
	return nil
}

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

func TestRunExportsAndStores(t *testing.T) {
	db := newTestDB(t)
	clock := utils.NewClock(7)
	store := &memoryStore{}
	notify := &memoryNotifier{}
	svc := NewService(db, clock, store, notify)

	emp := employeeModel.Employee{Name: `Alice "Al"`, Department: "Assembly, Line 1", Status: employeeModel.StatusWorking}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	veh := vehicleModel.Vehicle{VehicleNumber: "V1", DriverName: "Driver", DriverPhone: "000-0000", Status: vehicleModel.StatusWaiting}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	today := clock.Today()
	seedRecord(t, db, emp.ID, &veh.ID, today)
	seedRecord(t, db, emp.ID, nil, today)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" || result.Timestamp != today {
		t.Errorf("result id/timestamp = %q/%q", result.RunID, result.Timestamp)
	}
	if result.Employees != 1 || result.Vehicles != 1 || result.Records != 2 {
		t.Errorf("result counts = %+v, want 1 employee, 1 vehicle, 2 records", result)
	}
	if !result.Stored || !result.Notified {
		t.Errorf("stored/notified = %v/%v, want both true", result.Stored, result.Notified)
	}

	for _, name := range []string{"employees.csv", "vehicles.csv", "boarding_records.csv"} {
		key := fmt.Sprintf("backups/%s/%s", today, name)
		if _, ok := store.objects[key]; !ok {
			t.Errorf("missing stored object %q, have %v", key, keys(store.objects))
		}
	}

	employees := string(store.objects[fmt.Sprintf("backups/%s/employees.csv", today)])
	if !strings.HasPrefix(employees, "id,name,department,status,created_at,updated_at\n") {
		t.Errorf("employees.csv header wrong:\n%s", employees)
	}
	// Values carry quoting so embedded commas and quotes survive.
	if !strings.Contains(employees, `"Alice ""Al"""`) || !strings.Contains(employees, `"Assembly, Line 1"`) {
		t.Errorf("employees.csv quoting wrong:\n%s", employees)
	}

	records := string(store.objects[fmt.Sprintf("backups/%s/boarding_records.csv", today)])
	if !strings.Contains(records, fmt.Sprintf(`"%s"`, boardingModel.ExternalVehicleLabel)) {
		t.Errorf("boarding_records.csv should label the null-vehicle row:\n%s", records)
	}

	if notify.calls != 1 || !strings.Contains(notify.subject, today) {
		t.Errorf("notify calls = %d subject = %q", notify.calls, notify.subject)
	}
}

func TestRunCutsOffOldRecords(t *testing.T) {
	db := newTestDB(t)
	clock := utils.NewClock(7)
	svc := NewService(db, clock, nil, nil)

	emp := employeeModel.Employee{Name: "Alice", Department: "Assembly", Status: employeeModel.StatusWorking}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	recent := utils.DateOf(clock.Now().AddDate(0, 0, -recordExportDays))
	stale := utils.DateOf(clock.Now().AddDate(0, 0, -recordExportDays-1))
	seedRecord(t, db, emp.ID, nil, recent)
	seedRecord(t, db, emp.ID, nil, stale)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Records != 1 {
		t.Errorf("records = %d, want only the one inside the export window", result.Records)
	}
	if result.Stored || result.Notified {
		t.Errorf("stored/notified = %v/%v, want both false without integrations", result.Stored, result.Notified)
	}
}

func TestRunEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	clock := utils.NewClock(7)
	store := &memoryStore{}
	svc := NewService(db, clock, store, nil)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Employees != 0 || result.Vehicles != 0 || result.Records != 0 {
		t.Errorf("result = %+v, want all zero counts", result)
	}

	key := fmt.Sprintf("backups/%s/employees.csv", clock.Today())
	if got := string(store.objects[key]); got != "" {
		t.Errorf("empty table should export an empty file, got %q", got)
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
