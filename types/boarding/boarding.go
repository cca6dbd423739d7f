package boarding

import "fmt"

// ExternalVehicleRef is the literal clients send in place of a numeric
// vehicle id when the boarding used an untracked vehicle.
const ExternalVehicleRef = "external"

// RegisterRequest carries the vehicle reference and the employees boarding
// it. VehicleID is either a numeric vehicle id or the external sentinel, so
// it is parsed from the raw JSON value.
type RegisterRequest struct {
	VehicleID   interface{} `json:"vehicle_id"`
	EmployeeIDs []uint      `json:"employee_ids"`
}

func (r RegisterRequest) Validate() error {
	if r.VehicleID == nil || len(r.EmployeeIDs) == 0 {
		return fmt.Errorf("vehicle ID and employee IDs array are required")
	}
	return nil
}

// ResolveVehicle returns the numeric vehicle id, or isExternal=true when the
// request names the external sentinel.
func (r RegisterRequest) ResolveVehicle() (vehicleID uint, isExternal bool, err error) {
	switch v := r.VehicleID.(type) {
	case string:
		if v == ExternalVehicleRef {
			return 0, true, nil
		}
	case float64:
		if v > 0 && v == float64(uint(v)) {
			return uint(v), false, nil
		}
	}
	return 0, false, fmt.Errorf("vehicle_id must be a positive number or %q", ExternalVehicleRef)
}
