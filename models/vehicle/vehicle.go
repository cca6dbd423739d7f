package vehicle

import "time"

type VehicleStatus string

const (
	StatusWaiting   VehicleStatus = "waiting"
	StatusDriving   VehicleStatus = "driving"
	StatusCompleted VehicleStatus = "completed"
	StatusRepair    VehicleStatus = "repair"
	StatusOut       VehicleStatus = "out"
)

func (vs VehicleStatus) String() string {
	return string(vs)
}

func (vs VehicleStatus) IsValid() bool {
	switch vs {
	case StatusWaiting, StatusDriving, StatusCompleted, StatusRepair, StatusOut:
		return true
	default:
		return false
	}
}

// Vehicle represents a shuttle and its driver. Boarding registration moves a
// waiting vehicle to driving; the daily reset moves completed and driving
// vehicles back to waiting, leaving repair and out untouched.
type Vehicle struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	VehicleNumber string        `gorm:"type:varchar(255);not null" json:"vehicle_number"`
	DriverName    string        `gorm:"type:varchar(255);not null" json:"driver_name"`
	DriverPhone   string        `gorm:"type:varchar(20);not null" json:"driver_phone"`
	Status        VehicleStatus `gorm:"size:20;not null;default:waiting" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
