package employee

import (
	"fmt"

	employeeModel "shuttle-tracker/models/employee"
)

type CreateRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

func (r CreateRequest) Validate() error {
	if r.Name == "" || r.Department == "" {
		return fmt.Errorf("name and department are required")
	}
	return nil
}

// UpdateRequest replaces the full editable row, status included.
type UpdateRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

func (r UpdateRequest) Validate() error {
	if r.Name == "" || r.Department == "" || r.Status == "" {
		return fmt.Errorf("name, department, and status are required")
	}
	if !employeeModel.EmployeeStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid employee status: %s", r.Status)
	}
	return nil
}
