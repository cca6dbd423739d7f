package boarding

import "time"

// Display values for boardings not tied to a tracked vehicle.
const (
	ExternalVehicleLabel = "External Vehicle"
	ExternalDriverLabel  = "-"
)

// BoardingRecord links an employee to a vehicle at the instant the shuttle
// departed. A nil VehicleID denotes an external vehicle. BoardingDate is
// always derived from BoardingTime under the configured UTC offset, never
// supplied independently. Records are immutable once created; the manual
// reset bulk-deletes them by date.
type BoardingRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleID    *uint     `gorm:"index" json:"vehicle_id"`
	EmployeeID   uint      `gorm:"not null;index" json:"employee_id"`
	BoardingDate string    `gorm:"type:varchar(10);not null;index" json:"boarding_date"`
	BoardingTime time.Time `gorm:"not null" json:"boarding_time"`
	CreatedAt    time.Time `json:"created_at"`
}
