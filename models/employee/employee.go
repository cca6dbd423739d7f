package employee

import "time"

type EmployeeStatus string

const (
	StatusWorking      EmployeeStatus = "working"
	StatusLeft         EmployeeStatus = "left"
	StatusBusinessTrip EmployeeStatus = "business_trip"
	StatusVacation     EmployeeStatus = "vacation"
)

func (es EmployeeStatus) String() string {
	return string(es)
}

func (es EmployeeStatus) IsValid() bool {
	switch es {
	case StatusWorking, StatusLeft, StatusBusinessTrip, StatusVacation:
		return true
	default:
		return false
	}
}

// Employee represents a tracked employee and their departure status.
// The daily reset reverts "left" back to "working"; business_trip and
// vacation are set manually and never touched by resets.
type Employee struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Department string         `gorm:"type:varchar(255);not null" json:"department"`
	Status     EmployeeStatus `gorm:"size:20;not null;default:working" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
