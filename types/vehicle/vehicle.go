package vehicle

import (
	"fmt"

	vehicleModel "shuttle-tracker/models/vehicle"
)

type CreateRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
}

func (r CreateRequest) Validate() error {
	if r.VehicleNumber == "" || r.DriverName == "" || r.DriverPhone == "" {
		return fmt.Errorf("vehicle number, driver name, and driver phone are required")
	}
	return nil
}

// UpdateRequest replaces the full editable row, status included.
type UpdateRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	Status        string `json:"status"`
}

func (r UpdateRequest) Validate() error {
	if r.VehicleNumber == "" || r.DriverName == "" || r.DriverPhone == "" || r.Status == "" {
		return fmt.Errorf("vehicle number, driver name, driver phone, and status are required")
	}
	if !vehicleModel.VehicleStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid vehicle status: %s", r.Status)
	}
	return nil
}
