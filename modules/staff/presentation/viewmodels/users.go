package viewmodels

// User is the flat directory row served by the API. Field names follow the
// downstream consumers' contract; d_id carries the d-number.
type User struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	HireDate         *string `json:"hire_date"`
	DNumber          *string `json:"d_id"`
	EmployeeNumber   *string `json:"employee_number"`
	PositionID       *int    `json:"position_id"`
	PositionName     *string `json:"position_name"`
	DepartmentID     *int    `json:"department_id"`
	DepartmentName   *string `json:"department_name"`
	CardUID          *string `json:"card_uid"`
	CardManagementID *string `json:"card_management_id"`
	SystemID         *string `json:"system_id"`
}
