package mappers

import (
	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/presentation/viewmodels"
	"staffledger/pkg/mapping"
)

const dateLayout = "2006-01-02"

func FlatUserToViewModel(u staff.FlatUser) viewmodels.User {
	vm := viewmodels.User{
		UserID:           u.UserID,
		Name:             u.Name,
		DNumber:          u.DNumber,
		EmployeeNumber:   u.EmployeeNumber,
		PositionID:       u.PositionID,
		PositionName:     u.PositionName,
		DepartmentID:     u.DepartmentID,
		DepartmentName:   u.DepartmentName,
		CardUID:          u.CardUID,
		CardManagementID: u.CardManagementID,
		SystemID:         u.SystemID,
	}
	if u.HireDate != nil {
		vm.HireDate = mapping.Pointer(u.HireDate.Format(dateLayout))
	}
	return vm
}
